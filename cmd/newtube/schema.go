package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lucas-ellwanger/newtube/pkg/domain"
	kcategory "github.com/lucas-ellwanger/newtube/pkg/domain/category/db"
	kschema "github.com/lucas-ellwanger/newtube/pkg/domain/schema/db"
	"github.com/spf13/cobra"
)

func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "upgrade",
		Short: "upgrade the database schema to the latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), conf.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return upgradeSchema(cmd.Context(), db.Schema(), cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "show the current and the latest versions of the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), conf.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return showSchemaVersion(cmd.Context(), db.Schema(), cmd.OutOrStdout())
		},
	})

	return cmd
}

func upgradeSchema(ctx context.Context, schema kschema.SchemaInterface, out io.Writer) error {
	before, err := schema.Version(ctx)
	if err != nil {
		return err
	}
	if err := schema.Upgrade(ctx); err != nil {
		return err
	}
	after, err := schema.Version(ctx)
	if err != nil {
		return err
	}
	if before == after {
		_, err = fmt.Fprintf(out, "schema is up to date: version %d\n", after)
		return err
	}
	_, err = fmt.Fprintf(out, "schema is upgraded: version %d -> %d\n", before, after)
	return err
}

func showSchemaVersion(ctx context.Context, schema kschema.SchemaInterface, out io.Writer) error {
	current, err := schema.Version(ctx)
	if err != nil {
		return err
	}
	latest, err := schema.Latest()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "current: %d\nlatest: %d\n", current, latest)
	return err
}

func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "manage video categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "register the default categories",
		Long: `Register the default categories.

Categories already registered keep their ids, and their descriptions are updated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), conf.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return seedCategories(cmd.Context(), db.Category(), cmd.OutOrStdout())
		},
	})

	return cmd
}

func seedCategories(ctx context.Context, dbCategory kcategory.CategoryInterface, out io.Writer) error {
	categories, err := dbCategory.Seed(ctx, domain.DefaultCategories())
	if err != nil {
		return err
	}
	for _, c := range categories {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", c.Id, c.Name); err != nil {
			return err
		}
	}
	return nil
}
