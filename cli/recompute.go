package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-link/api-go/services"
)

type recomputeOptions struct {
	UserID string
	All    bool
}

func (o recomputeOptions) validate() error {
	if o.All == (o.UserID != "") {
		return errors.New("pass exactly one of --user or --all")
	}
	return nil
}

// NewRecomputeCommand rebuilds cached reputations from the stored ratings.
func NewRecomputeCommand() *cobra.Command {
	opts := recomputeOptions{}

	cmd := &cobra.Command{
		Use:   "recompute-reputation",
		Short: "Rebuild cached reputation from stored ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			ratings := services.NewRatingService(db, nil, log, nil)
			ctx := cmd.Context()
			if opts.All {
				n, err := ratings.RecomputeAll(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d users\n", n)
				return nil
			}

			summary, err := ratings.RecomputeAverage(ctx, opts.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.1f (%d ratings)\n",
				summary.UsuarioID, summary.Reputacion, summary.TotalCalificaciones)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "", "user id to recompute")
	cmd.Flags().BoolVar(&opts.All, "all", false, "recompute every user")

	return cmd
}
