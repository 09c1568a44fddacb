package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mandi-mitra/internal/app"
	"mandi-mitra/internal/catalog"
	"mandi-mitra/internal/config"
	"mandi-mitra/internal/negotiation"
	"mandi-mitra/internal/pricing"
)

// Version is stamped at build time.
var Version = "dev"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "mandi",
		Short: "Mandi Mitra - fair prices at the market",
		Long: `Mandi Mitra looks up market prices for a commodity, suggests a sale price
and rates offers during a negotiation.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); !debug {
				log.SetOutput(io.Discard)
			}
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file found")
			}
			*cfg = *config.Load()
		},
	}

	rootCmd.AddCommand(newQuoteCmd(cfg))
	rootCmd.AddCommand(newNegotiateCmd(cfg))
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Show service logs")

	return rootCmd
}

// newQuoteCmd creates the quote command
func newQuoteCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [COMMODITY] [LOCATION]",
		Short: "Look up the market price and a suggested sale price",
		Long: `Resolve the market price of a commodity at a location and suggest a sale price.
Example: mandi quote tomato mysore --quantity=25`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, _ := cmd.Flags().GetString("quantity")
			return runQuote(cmd.Context(), cfg, args[0], args[1], quantity)
		},
	}

	cmd.Flags().String("quantity", "", "Quantity in kg (defaults to 10)")

	return cmd
}

func runQuote(ctx context.Context, cfg *config.Config, commodity, location, quantity string) error {
	resolver, _, err := app.NewPricing(ctx, cfg, catalog.Default())
	if err != nil {
		return err
	}

	qty := pricing.ParseQuantity(quantity)
	quote := resolver.Resolve(ctx, pricing.Query{
		Commodity: commodity,
		Location:  location,
		Quantity:  qty,
	})
	fmt.Println(renderQuote(commodity, location, qty, quote, pricing.Suggest(quote, qty)))
	return nil
}

// newNegotiateCmd creates the negotiate command
func newNegotiateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "negotiate",
		Short: "Rate an offer and suggest a counter-offer",
		Long: `Rate the other side's offer against the asking price and suggest a counter-offer.
Missing values are asked for interactively.
Example: mandi negotiate --mode=vendor --asking=40 --offer=30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			asking, _ := cmd.Flags().GetFloat64("asking")
			offer, _ := cmd.Flags().GetFloat64("offer")
			market, _ := cmd.Flags().GetFloat64("market")
			commodity, _ := cmd.Flags().GetString("commodity")

			var err error
			if mode == "" {
				if mode, err = PromptForRole(); err != nil {
					return err
				}
			}
			if asking <= 0 {
				if asking, err = PromptForPrice("Asking price (₹/kg):", "The price the vendor is asking for"); err != nil {
					return err
				}
			}
			if offer <= 0 {
				if offer, err = PromptForPrice("Offer (₹/kg):", "The price the buyer is offering"); err != nil {
					return err
				}
			}

			role, err := negotiation.ParseRole(mode)
			if err != nil {
				return err
			}
			return runNegotiate(cmd.Context(), cfg, negotiation.Input{
				Role:        role,
				Commodity:   commodity,
				AskingPrice: asking,
				Offer:       offer,
				MarketPrice: market,
			})
		},
	}

	cmd.Flags().String("mode", "", "Who you are: vendor or buyer")
	cmd.Flags().Float64("asking", 0, "Asking price per kg")
	cmd.Flags().Float64("offer", 0, "Offered price per kg")
	cmd.Flags().Float64("market", 0, "Market price per kg (defaults to 90% of asking)")
	cmd.Flags().String("commodity", "", "Commodity being traded")

	return cmd
}

func runNegotiate(ctx context.Context, cfg *config.Config, in negotiation.Input) error {
	res, err := negotiation.Assess(in)
	if err != nil {
		return err
	}

	_, rephraser, err := app.NewPricing(ctx, cfg, catalog.Default())
	if err != nil {
		return err
	}
	res.Phrase = rephraser.Phrase(ctx, in, res)

	fmt.Println(renderAssessment(in, res))
	return nil
}

// newCatalogCmd creates the catalog command
func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List known commodities and locations",
		Run: func(cmd *cobra.Command, args []string) {
			cat := catalog.Default()
			fmt.Println(headerStyle.Render("Commodities"))
			fmt.Println(strings.Join(cat.Commodities(), ", "))
			fmt.Println()
			fmt.Println(headerStyle.Render("Locations"))
			fmt.Println(strings.Join(cat.Regions(), ", "))
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Mandi Mitra %s\n", Version)
			fmt.Println("Fair price discovery and negotiation help for mandi traders")
		},
	}
}
