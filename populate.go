package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dental-chatbot-backend/services"
)

var populateCmd = &cobra.Command{
	Use:   "populate-embeddings",
	Short: "Embed the clinic data into the vector store",
	Long: `Chunks and embeds every FAQ, doctor, hospital and insurance record and writes
them to the configured vector store. Nothing is written when the store already
holds embeddings.`,
	Args: cobra.NoArgs,
	RunE: runPopulate,
}

func init() {
	rootCmd.AddCommand(populateCmd)
}

func runPopulate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.populator == nil {
		return services.ErrVectorStoreDisabled
	}

	result, err := app.populator.Populate(ctx, app.facts.Documents())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}
