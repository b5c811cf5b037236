package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"carconnect/internal/core/domain"
)

// prompt writes label and reads one trimmed line. io.EOF is returned once
// input is exhausted.
func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(c.out)
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) promptID(label string) (uint, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: please enter a positive number", domain.ErrInvalidInput)
	}
	return uint(id), nil
}

func (c *Console) promptInt(label string) (int, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: please enter a whole number", domain.ErrInvalidInput)
	}
	return n, nil
}

func (c *Console) promptFloat(label string) (float64, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: please enter a number", domain.ErrInvalidInput)
	}
	return f, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: please enter 'true' or 'false'", domain.ErrInvalidInput)
}

func (c *Console) promptBool(label string) (bool, error) {
	s, err := c.prompt(label)
	if err != nil {
		return false, err
	}
	return parseBool(s)
}

func (c *Console) promptDate(label string) (time.Time, error) {
	s, err := c.prompt(label)
	if err != nil {
		return time.Time{}, err
	}
	return domain.ParseDate(s)
}

// Optional prompts return nil when the line is left blank

func (c *Console) promptOptional(label string) (*string, error) {
	s, err := c.prompt(label)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

func (c *Console) promptOptionalInt(label string) (*int, error) {
	s, err := c.prompt(label)
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: please enter a whole number", domain.ErrInvalidInput)
	}
	return &n, nil
}

func (c *Console) promptOptionalFloat(label string) (*float64, error) {
	s, err := c.prompt(label)
	if err != nil || s == "" {
		return nil, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: please enter a number", domain.ErrInvalidInput)
	}
	return &f, nil
}

func (c *Console) promptOptionalBool(label string) (*bool, error) {
	s, err := c.prompt(label)
	if err != nil || s == "" {
		return nil, err
	}
	b, err := parseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
