package console

import (
	"context"
	"errors"
	"fmt"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/domain"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/pagination"
)

func (c *Console) adminLogin(ctx context.Context) error {
	c.header("Admin Login")
	username, err := c.prompt("Enter Username: ")
	if err != nil {
		return err
	}
	pw, err := c.prompt("Enter Password: ")
	if err != nil {
		return err
	}

	admin, err := c.svc.Auth.AdminLogin(ctx, username, pw)
	if err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			fmt.Fprintf(c.out, "Login failed: %v\n", err)
			return nil
		}
		return err
	}

	fmt.Fprintf(c.out, "Login successful! Welcome, Admin %s!\n", admin.FirstName)
	return c.adminMenu(ctx, admin)
}

func (c *Console) adminMenu(ctx context.Context, admin *models.Admin) error {
	back := menuItem{"Back to Admin Menu", leave}

	return c.loop(ctx, fmt.Sprintf("Admin Menu (%s)", admin.Username), []menuItem{
		{"Manage Vehicles", func(ctx context.Context) error {
			return c.submenu(ctx, "Manage Vehicles", []menuItem{
				{"Add New Vehicle", c.addVehicle},
				{"Update Vehicle Details", c.updateVehicle},
				{"Remove Vehicle", c.removeVehicle},
				{"View All Vehicles", c.viewAllVehicles},
				{"Find Vehicle by Registration Number", c.findVehicleByRegistration},
				{"View Vehicle Reservations", c.viewVehicleReservations},
				back,
			})
		}},
		{"Manage Customers", func(ctx context.Context) error {
			return c.submenu(ctx, "Manage Customers", []menuItem{
				{"Update Customer Details", c.updateCustomerByAdmin},
				{"Delete Customer", c.deleteCustomer},
				{"View All Customers", c.viewAllCustomers},
				back,
			})
		}},
		{"Manage Admins", func(ctx context.Context) error {
			return c.submenu(ctx, "Manage Admins", []menuItem{
				{"Add New Admin", c.addAdmin},
				{"Update Admin Details", c.updateAdmin},
				{"Delete Admin", func(ctx context.Context) error { return c.deleteAdmin(ctx, admin.ID) }},
				{"View All Admins", c.viewAllAdmins},
				back,
			})
		}},
		{"Manage Reservations", func(ctx context.Context) error {
			return c.submenu(ctx, "Manage Reservations", []menuItem{
				{"View All Reservations", c.viewAllReservations},
				{"Update Reservation Status", c.updateReservationStatus},
				back,
			})
		}},
		{"Generate Reports", func(ctx context.Context) error {
			return c.submenu(ctx, "Generate Reports", []menuItem{
				{"Reservation History Report", c.reservationHistoryReport},
				{"Vehicle Utilization Report", c.vehicleUtilizationReport},
				{"Revenue Report", c.revenueReport},
				back,
			})
		}},
		{"Logout", c.logout},
	})
}

// ============================================================
// Vehicles
// ============================================================

func (c *Console) addVehicle(ctx context.Context) error {
	c.header("Add New Vehicle")
	var input services.AddVehicleInput
	var err error

	if input.Model, err = c.prompt("Enter Model: "); err != nil {
		return err
	}
	if input.Make, err = c.prompt("Enter Make: "); err != nil {
		return err
	}
	if input.Year, err = c.promptInt("Enter Year: "); err != nil {
		return err
	}
	if input.Color, err = c.prompt("Enter Color: "); err != nil {
		return err
	}
	if input.RegistrationNumber, err = c.prompt("Enter Registration Number: "); err != nil {
		return err
	}
	available, err := c.promptBool("Is Available (true/false): ")
	if err != nil {
		return err
	}
	input.Availability = &available
	if input.DailyRate, err = c.promptFloat("Enter Daily Rate: "); err != nil {
		return err
	}

	vehicle, err := c.svc.Vehicles.AddVehicle(ctx, &input)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Vehicle added successfully! Vehicle ID: %d\n", vehicle.ID)
	return nil
}

func (c *Console) updateVehicle(ctx context.Context) error {
	c.header("Update Vehicle Details")
	id, err := c.promptID("Enter Vehicle ID to update: ")
	if err != nil {
		return err
	}
	v, err := c.svc.Vehicles.GetVehicleByID(ctx, id)
	if err != nil {
		return err
	}

	var input services.UpdateVehicleInput
	keep := "(leave blank to keep current): "

	fmt.Fprintf(c.out, "Current Model: %s\n", v.Model)
	if input.Model, err = c.promptOptional("Enter New Model " + keep); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Current Make: %s\n", v.Make)
	if input.Make, err = c.promptOptional("Enter New Make " + keep); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Current Year: %d\n", v.Year)
	if input.Year, err = c.promptOptionalInt("Enter New Year " + keep); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Current Color: %s\n", v.Color)
	if input.Color, err = c.promptOptional("Enter New Color " + keep); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Current Availability: %t\n", v.Availability)
	if input.Availability, err = c.promptOptionalBool("Enter New Availability (true/false) " + keep); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Current Daily Rate: %.2f\n", v.DailyRate)
	if input.DailyRate, err = c.promptOptionalFloat("Enter New Daily Rate " + keep); err != nil {
		return err
	}

	if _, err := c.svc.Vehicles.UpdateVehicle(ctx, id, &input); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Vehicle updated successfully!")
	return nil
}

func (c *Console) removeVehicle(ctx context.Context) error {
	c.header("Remove Vehicle")
	id, err := c.promptID("Enter Vehicle ID to remove: ")
	if err != nil {
		return err
	}
	if err := c.svc.Vehicles.RemoveVehicle(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Vehicle %d removed successfully.\n", id)
	return nil
}

func (c *Console) viewAllVehicles(ctx context.Context) error {
	c.header("All Vehicles in System")
	vehicles, err := pagination.Collect(ctx, c.svc.Vehicles.ListVehicles)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		fmt.Fprintln(c.out, "No vehicles found in the system.")
		return nil
	}
	for _, v := range vehicles {
		c.printVehicle(v, true)
	}
	return nil
}

func (c *Console) findVehicleByRegistration(ctx context.Context) error {
	c.header("Find Vehicle by Registration Number")
	regNo, err := c.prompt("Enter Registration Number: ")
	if err != nil {
		return err
	}
	v, err := c.svc.Vehicles.GetVehicleByRegistrationNumber(ctx, regNo)
	if err != nil {
		return err
	}
	c.printVehicle(v, true)
	return nil
}

func (c *Console) viewVehicleReservations(ctx context.Context) error {
	c.header("Vehicle Reservations")
	id, err := c.promptID("Enter Vehicle ID: ")
	if err != nil {
		return err
	}
	reservations, err := c.svc.Reservations.GetReservationsByVehicleID(ctx, id)
	if err != nil {
		return err
	}
	if len(reservations) == 0 {
		fmt.Fprintf(c.out, "No reservations found for vehicle %d.\n", id)
		return nil
	}
	for _, r := range reservations {
		c.printReservation(r)
	}
	return nil
}

// ============================================================
// Customers
// ============================================================

func (c *Console) updateCustomerByAdmin(ctx context.Context) error {
	c.header("Update Customer Details")
	id, err := c.promptID("Enter Customer ID to update: ")
	if err != nil {
		return err
	}
	customer, err := c.svc.Customers.GetCustomerByID(ctx, id)
	if err != nil {
		return err
	}

	input, err := c.promptCustomerUpdate(customer)
	if err != nil {
		return err
	}
	if _, err := c.svc.Customers.UpdateCustomer(ctx, id, input); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Customer updated successfully!")
	return nil
}

func (c *Console) deleteCustomer(ctx context.Context) error {
	c.header("Delete Customer")
	id, err := c.promptID("Enter Customer ID to delete: ")
	if err != nil {
		return err
	}
	if err := c.svc.Customers.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Customer %d deleted successfully.\n", id)
	return nil
}

func (c *Console) viewAllCustomers(ctx context.Context) error {
	c.header("All Customers in System")
	customers, err := pagination.Collect(ctx, c.svc.Customers.ListCustomers)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		fmt.Fprintln(c.out, "No customers found.")
		return nil
	}
	for _, cu := range customers {
		fmt.Fprintf(c.out, "Customer ID: %d\n", cu.ID)
		fmt.Fprintf(c.out, "  Name: %s\n", cu.FullName())
		fmt.Fprintf(c.out, "  Email: %s\n", cu.Email)
		fmt.Fprintf(c.out, "  Phone: %s\n", cu.PhoneNumber)
		fmt.Fprintf(c.out, "  Address: %s\n", cu.Address)
		fmt.Fprintf(c.out, "  Username: %s\n", cu.Username)
		fmt.Fprintf(c.out, "  Registration Date: %s\n", cu.RegistrationDate.Format(domain.DateLayout))
		c.separator()
	}
	return nil
}

// ============================================================
// Admins
// ============================================================

func (c *Console) addAdmin(ctx context.Context) error {
	c.header("Add New Admin")
	var input services.AddAdminInput
	fields := []struct {
		label string
		dest  *string
	}{
		{"Enter First Name: ", &input.FirstName},
		{"Enter Last Name: ", &input.LastName},
		{"Enter Email: ", &input.Email},
		{"Enter Phone Number: ", &input.PhoneNumber},
		{"Enter Desired Username: ", &input.Username},
		{"Enter Password: ", &input.Password},
		{"Enter Role (e.g., super admin, fleet manager): ", &input.Role},
	}
	for _, f := range fields {
		v, err := c.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dest = v
	}

	admin, err := c.svc.Admins.AddAdmin(ctx, &input)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Admin added successfully! Admin ID: %d\n", admin.ID)
	return nil
}

func (c *Console) updateAdmin(ctx context.Context) error {
	c.header("Update Admin Details")
	id, err := c.promptID("Enter Admin ID to update: ")
	if err != nil {
		return err
	}
	admin, err := c.svc.Admins.GetAdminByID(ctx, id)
	if err != nil {
		return err
	}

	var input services.UpdateAdminInput
	fields := []struct {
		label   string
		current string
		dest    **string
	}{
		{"First Name", admin.FirstName, &input.FirstName},
		{"Last Name", admin.LastName, &input.LastName},
		{"Email", admin.Email, &input.Email},
		{"Phone Number", admin.PhoneNumber, &input.PhoneNumber},
		{"Role", admin.Role, &input.Role},
	}
	for _, f := range fields {
		fmt.Fprintf(c.out, "Current %s: %s\n", f.label, f.current)
		v, err := c.promptOptional(fmt.Sprintf("Enter New %s (leave blank to keep current): ", f.label))
		if err != nil {
			return err
		}
		*f.dest = v
	}
	if input.Password, err = c.promptOptional("Enter New Password (leave blank to keep current): "); err != nil {
		return err
	}

	if _, err := c.svc.Admins.UpdateAdmin(ctx, id, &input); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Admin updated successfully!")
	return nil
}

func (c *Console) deleteAdmin(ctx context.Context, actingAdminID uint) error {
	c.header("Delete Admin")
	id, err := c.promptID("Enter Admin ID to delete: ")
	if err != nil {
		return err
	}
	if err := c.svc.Admins.DeleteAdmin(ctx, id, actingAdminID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Admin %d deleted successfully.\n", id)
	return nil
}

func (c *Console) viewAllAdmins(ctx context.Context) error {
	c.header("All Admins in System")
	admins, err := pagination.Collect(ctx, c.svc.Admins.ListAdmins)
	if err != nil {
		return err
	}
	for _, a := range admins {
		fmt.Fprintf(c.out, "Admin ID: %d\n", a.ID)
		fmt.Fprintf(c.out, "  Name: %s %s\n", a.FirstName, a.LastName)
		fmt.Fprintf(c.out, "  Email: %s\n", a.Email)
		fmt.Fprintf(c.out, "  Phone: %s\n", a.PhoneNumber)
		fmt.Fprintf(c.out, "  Username: %s\n", a.Username)
		fmt.Fprintf(c.out, "  Role: %s\n", a.Role)
		fmt.Fprintf(c.out, "  Join Date: %s\n", a.JoinDate.Format(domain.DateLayout))
		c.separator()
	}
	return nil
}

// ============================================================
// Reservations
// ============================================================

func (c *Console) viewAllReservations(ctx context.Context) error {
	c.header("All Reservations")
	reservations, err := pagination.Collect(ctx, c.svc.Reservations.ListReservations)
	if err != nil {
		return err
	}
	if len(reservations) == 0 {
		fmt.Fprintln(c.out, "No reservations found.")
		return nil
	}
	for _, r := range reservations {
		c.printReservation(r)
	}
	return nil
}

func (c *Console) updateReservationStatus(ctx context.Context) error {
	c.header("Update Reservation Status")
	id, err := c.promptID("Enter Reservation ID: ")
	if err != nil {
		return err
	}
	status, err := c.prompt("Enter New Status (pending, confirmed, completed, cancelled): ")
	if err != nil {
		return err
	}

	r, err := c.svc.Reservations.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Reservation %d is now %s.\n", r.ID, r.Status)
	return nil
}
