package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"aptprice/pricing"
)

func predictCmd() *cobra.Command {
	listing := pricing.DefaultListing()
	var txType string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Estimate one apartment from the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			listing.Type = pricing.TransactionType(txType)
			model, _, err := loadModel()
			if err != nil {
				return err
			}

			est, err := pricing.NewEstimator(model).Estimate(cmd.Context(), listing)
			if errors.Is(err, pricing.ErrPredictionNotPossible) {
				fmt.Fprintln(cmd.OutOrStdout(), pricing.MsgPredictionNotPossible)
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s tại %s\n", est.Display, est.Listing.District)
			return nil
		},
	}
	cmd.Flags().StringVar(&txType, "type", string(pricing.ForSale), "transaction type")
	cmd.Flags().StringVarP(&listing.District, "district", "d", listing.District, "district name, see aptprice districts")
	cmd.Flags().IntVar(&listing.Area, "area", listing.Area, fmt.Sprintf("area in m² [%d-%d]", pricing.MinArea, pricing.MaxArea))
	cmd.Flags().IntVar(&listing.Bedroom, "bedroom", listing.Bedroom, fmt.Sprintf("bedrooms [%d-%d]", pricing.MinBedroom, pricing.MaxBedroom))
	cmd.Flags().IntVar(&listing.Floor, "floor", listing.Floor, fmt.Sprintf("floors [%d-%d]", pricing.MinFloor, pricing.MaxFloor))
	return cmd
}

func districtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts",
		Short: "List the districts the model knows",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range pricing.Districts() {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}
