package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"Food-Tracker/cmd/config"
	migration "Food-Tracker/cmd/database/migrate"
	"Food-Tracker/internal/utils"
	"Food-Tracker/internal/utils/mailing"
	"Food-Tracker/pkg/digest"
	"Food-Tracker/pkg/food"
	"Food-Tracker/pkg/jwt"
	"Food-Tracker/pkg/voice"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			return migration.Migrate(db, log)
		},
	}
}

func parseCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "parse <transcript>",
		Short: "Parse a transcript the way the voice assistant does",
		Long:  `Prints the expiry answer when the transcript is a question, otherwise the parsed food record. With --user, questions are answered from that user's stored items.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript := strings.Join(args, " ")
			today := time.Now()

			var out any
			if voice.IsQuestion(transcript) {
				var source voice.ItemSource = voice.ItemSourceFunc(func(context.Context) ([]voice.FoodRecord, error) {
					return nil, nil
				})
				if userID != "" {
					foodService, err := openFoodService()
					if err != nil {
						return err
					}
					source = voice.ItemSourceFunc(func(ctx context.Context) ([]voice.FoodRecord, error) {
						return foodService.ListFoodRecords(ctx, userID)
					})
				}
				out = voice.ResolveQueryFrom(cmd.Context(), transcript, source, today)
			} else {
				out = voice.Parse(transcript)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Answer questions from this user's stored items")

	return cmd
}

func tokenCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := utils.GetConfig("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := jwt.NewJWTService(secret, config.TokenTTL).GenerateTokenUser(userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID to embed in the token")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func digestCmd() *cobra.Command {
	var userID, to string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Mail a user the items expiring in the next days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			foodService, err := openFoodService()
			if err != nil {
				return err
			}
			mailer := mailing.NewMailer(mailing.LoadMailConfig())
			sent, err := digest.NewDigestService(foodService, mailer, log).SendDigest(cmd.Context(), userID, to)
			if err != nil {
				return err
			}
			if !sent {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing expiring, no digest sent")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "digest sent to %s\n", to)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User whose items are summarized")
	cmd.Flags().StringVar(&to, "to", "", "Recipient email address")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func openFoodService() (food.FoodService, error) {
	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	return food.NewFoodService(food.NewFoodRepository(db), 0, log), nil
}
