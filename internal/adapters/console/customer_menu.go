package console

import (
	"context"
	"errors"
	"fmt"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/domain"
	"carconnect/internal/core/services"
)

func (c *Console) customerLogin(ctx context.Context) error {
	c.header("Customer Login")
	username, err := c.prompt("Enter Username: ")
	if err != nil {
		return err
	}
	pw, err := c.prompt("Enter Password: ")
	if err != nil {
		return err
	}

	customer, err := c.svc.Auth.CustomerLogin(ctx, username, pw)
	if err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			fmt.Fprintf(c.out, "Login failed: %v\n", err)
			return nil
		}
		return err
	}

	fmt.Fprintf(c.out, "Login successful! Welcome, %s!\n", customer.FirstName)
	return c.customerMenu(ctx, customer)
}

func (c *Console) registerCustomer(ctx context.Context) error {
	c.header("New Customer Registration")

	var input services.RegisterCustomerInput
	fields := []struct {
		label string
		dest  *string
	}{
		{"Enter First Name: ", &input.FirstName},
		{"Enter Last Name: ", &input.LastName},
		{"Enter Email: ", &input.Email},
		{"Enter Phone Number: ", &input.PhoneNumber},
		{"Enter Address: ", &input.Address},
		{"Enter Desired Username: ", &input.Username},
		{"Enter Password: ", &input.Password},
	}
	for _, f := range fields {
		v, err := c.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dest = v
	}

	customer, err := c.svc.Customers.RegisterCustomer(ctx, &input)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Customer registered successfully! Your customer ID is %d.\n", customer.ID)
	return nil
}

func (c *Console) customerMenu(ctx context.Context, customer *models.Customer) error {
	return c.loop(ctx, fmt.Sprintf("Customer Menu (%s)", customer.Username), []menuItem{
		{"Browse Available Vehicles", c.browseAvailableVehicles},
		{"Book a Reservation", func(ctx context.Context) error { return c.bookReservation(ctx, customer.ID) }},
		{"View My Reservations", func(ctx context.Context) error { return c.viewMyReservations(ctx, customer.ID) }},
		{"Update My Profile", func(ctx context.Context) error { return c.updateProfile(ctx, customer) }},
		{"Cancel a Reservation", func(ctx context.Context) error { return c.cancelReservation(ctx, customer.ID) }},
		{"Logout", c.logout},
	})
}

func (c *Console) logout(context.Context) error {
	fmt.Fprintln(c.out, "Logged out successfully.")
	return errLeave
}

func (c *Console) browseAvailableVehicles(ctx context.Context) error {
	c.header("Available Vehicles")
	vehicles, err := c.svc.Vehicles.GetAvailableVehicles(ctx)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		fmt.Fprintln(c.out, "No vehicles currently available.")
		return nil
	}
	for _, v := range vehicles {
		c.printVehicle(v, false)
	}
	return nil
}

func (c *Console) bookReservation(ctx context.Context, customerID uint) error {
	c.header("Book a Reservation")
	vehicleID, err := c.promptID("Enter Vehicle ID you wish to reserve: ")
	if err != nil {
		return err
	}

	vehicle, err := c.svc.Vehicles.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !vehicle.Availability {
		return fmt.Errorf("%w: vehicle %d", domain.ErrVehicleUnavailable, vehicleID)
	}

	start, err := c.promptDate("Enter Start Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	end, err := c.promptDate("Enter End Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	reservation, err := c.svc.Reservations.BookReservation(ctx, &services.BookReservationInput{
		CustomerID: customerID,
		VehicleID:  vehicleID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Reservation booked successfully! Reservation ID: %d\n", reservation.ID)
	fmt.Fprintf(c.out, "Estimated Total Cost: $%.2f (%d day(s) at $%.2f)\n",
		reservation.TotalCost, services.RentalDays(start, end), vehicle.DailyRate)
	return nil
}

func (c *Console) viewMyReservations(ctx context.Context, customerID uint) error {
	c.header("My Reservations")
	reservations, err := c.svc.Reservations.GetReservationsByCustomerID(ctx, customerID)
	if err != nil {
		return err
	}
	if len(reservations) == 0 {
		fmt.Fprintln(c.out, "You have no reservations.")
		return nil
	}
	for _, r := range reservations {
		c.printReservation(r)
	}
	return nil
}

func (c *Console) updateProfile(ctx context.Context, customer *models.Customer) error {
	c.header("Update Your Profile")
	input, err := c.promptCustomerUpdate(customer)
	if err != nil {
		return err
	}

	updated, err := c.svc.Customers.UpdateCustomer(ctx, customer.ID, input)
	if err != nil {
		return err
	}
	*customer = *updated
	fmt.Fprintln(c.out, "Profile updated successfully!")
	return nil
}

// promptCustomerUpdate asks for every editable field, blank keeps the current value
func (c *Console) promptCustomerUpdate(customer *models.Customer) (*services.UpdateCustomerInput, error) {
	var input services.UpdateCustomerInput
	fields := []struct {
		label   string
		current string
		dest    **string
	}{
		{"First Name", customer.FirstName, &input.FirstName},
		{"Last Name", customer.LastName, &input.LastName},
		{"Email", customer.Email, &input.Email},
		{"Phone Number", customer.PhoneNumber, &input.PhoneNumber},
		{"Address", customer.Address, &input.Address},
	}
	for _, f := range fields {
		fmt.Fprintf(c.out, "Current %s: %s\n", f.label, f.current)
		v, err := c.promptOptional(fmt.Sprintf("Enter New %s (leave blank to keep current): ", f.label))
		if err != nil {
			return nil, err
		}
		*f.dest = v
	}

	pw, err := c.promptOptional("Enter New Password (leave blank to keep current): ")
	if err != nil {
		return nil, err
	}
	input.Password = pw
	return &input, nil
}

func (c *Console) cancelReservation(ctx context.Context, customerID uint) error {
	c.header("Cancel a Reservation")
	id, err := c.promptID("Enter Reservation ID to cancel: ")
	if err != nil {
		return err
	}

	if err := c.svc.Reservations.CancelCustomerReservation(ctx, customerID, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Reservation %d cancelled successfully.\n", id)
	return nil
}

func (c *Console) printVehicle(v *models.Vehicle, withAvailability bool) {
	fmt.Fprintf(c.out, "Vehicle ID: %d\n", v.ID)
	fmt.Fprintf(c.out, "  Model: %s\n", v.Model)
	fmt.Fprintf(c.out, "  Make: %s\n", v.Make)
	fmt.Fprintf(c.out, "  Year: %d\n", v.Year)
	fmt.Fprintf(c.out, "  Color: %s\n", v.Color)
	fmt.Fprintf(c.out, "  Registration Number: %s\n", v.RegistrationNumber)
	fmt.Fprintf(c.out, "  Daily Rate: $%.2f\n", v.DailyRate)
	if withAvailability {
		fmt.Fprintf(c.out, "  Availability: %s\n", availabilityLabel(v.Availability))
	}
	c.separator()
}

func (c *Console) printReservation(r *models.Reservation) {
	fmt.Fprintf(c.out, "Reservation ID: %d\n", r.ID)
	if r.Vehicle != nil {
		fmt.Fprintf(c.out, "  Vehicle: %s %s (Reg: %s)\n", r.Vehicle.Make, r.Vehicle.Model, r.Vehicle.RegistrationNumber)
	} else {
		fmt.Fprintf(c.out, "  Vehicle ID: %d\n", r.VehicleID)
	}
	fmt.Fprintf(c.out, "  Start Date: %s\n", r.StartDate.Format(domain.DateLayout))
	fmt.Fprintf(c.out, "  End Date: %s\n", r.EndDate.Format(domain.DateLayout))
	fmt.Fprintf(c.out, "  Total Cost: $%.2f\n", r.TotalCost)
	fmt.Fprintf(c.out, "  Status: %s\n", r.Status)
	c.separator()
}

func availabilityLabel(available bool) string {
	if available {
		return "Available"
	}
	return "Not Available"
}
