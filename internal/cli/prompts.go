package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"mandi-mitra/internal/negotiation"
)

// PromptForRole asks which side of the deal the user is on
func PromptForRole() (string, error) {
	var selected string
	prompt := &survey.Select{
		Message: "Who are you in this deal?",
		Options: []string{string(negotiation.RoleVendor), string(negotiation.RoleBuyer)},
		Help:    "Vendors get a counter-offer to send to the buyer, buyers get one to send to the vendor.",
		Default: string(negotiation.RoleVendor),
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}

// PromptForPrice asks for a positive rupee amount
func PromptForPrice(message, help string) (float64, error) {
	var raw string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
	}

	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		_, err := parsePrice(val.(string))
		return err
	}))
	if err != nil {
		return 0, err
	}
	return parsePrice(raw)
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₹"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("enter a number, e.g. 40")
	}
	if v <= 0 {
		return 0, fmt.Errorf("price must be greater than zero")
	}
	return v, nil
}
