package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/yahipe-backend/internal/app"
	"github.com/angelmondragon/yahipe-backend/internal/auth"
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/internal/shops"
	"github.com/angelmondragon/yahipe-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/yahipe-backend/pkg/errors"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
)

type configLoader func() (*config.Config, error)

type rootOptions struct {
	seedPath string
	today    string
	logLevel string
	asJSON   bool
}

func newRootCmd(load configLoader) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "shopctl",
		Short:        "Inspect the YahiPe marketplace catalog",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.seedPath, "seed", "", "path to a YAML catalog (defaults to the embedded seed)")
	root.PersistentFlags().StringVar(&opts.today, "today", "", "fixed date for today's metrics (YYYY-MM-DD)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newShopsCmd(load, opts),
		newAnalyticsCmd(load, opts),
		newInsightsCmd(load, opts),
		newLoginCheckCmd(load, opts),
	)
	return root
}

// bootstrap loads config, applies flag overrides and wires the services.
func bootstrap(ctx context.Context, cmd *cobra.Command, load configLoader, opts *rootOptions) (*app.App, error) {
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.seedPath != "" {
		cfg.Seed.Path = opts.seedPath
	}
	if opts.today != "" {
		if _, err := catalog.ParseDate(opts.today); err != nil {
			return nil, fmt.Errorf("--today: %w", err)
		}
		cfg.Analytics.Today = opts.today
	}

	logg := logger.New(logger.Options{
		ServiceName: "shopctl",
		Level:       logger.ParseLevel(opts.logLevel),
		Output:      cmd.ErrOrStderr(),
	})
	return app.New(ctx, cfg, logg)
}

func newShopsCmd(load configLoader, opts *rootOptions) *cobra.Command {
	var criteria shops.Criteria

	cmd := &cobra.Command{
		Use:   "shops",
		Short: "List shops matching the browse filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), cmd, load, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Shops.Browse(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, result)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tOPEN\tSTAFF\tADDRESS")
			for _, row := range result.Shops {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\t%s\n", row.ID, row.Name, row.Category, row.IsOpen, row.StaffCount, row.Address)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&criteria.Category, "category", shops.AllCategories, "category to show")
	cmd.Flags().BoolVar(&criteria.OpenNow, "open-now", false, "only show open shops")
	return cmd
}

func newAnalyticsCmd(load configLoader, opts *rootOptions) *cobra.Command {
	var shopID string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Print the dashboard analytics for a shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), cmd, load, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			shop, err := a.Shops.Detail(cmd.Context(), shopID)
			if err != nil {
				return err
			}
			report := a.Analytics.Report(cmd.Context(), *shop)
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, report)
			}

			fmt.Fprintf(out, "%s (%s) as of %s\n", shop.Name, shop.ID, report.Date)
			fmt.Fprintf(out, "today: %s revenue, %d transactions\n", report.Today.Revenue.StringFixed(2), report.Today.Count)
			fmt.Fprintf(out, "active staff: %d\n\n", report.ActiveStaff)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tREVENUE")
			for _, bar := range report.WeeklySales {
				fmt.Fprintf(w, "%s\t%s\n", bar.Label, bar.Total.StringFixed(2))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "SERVICE\tBOOKINGS")
			for _, slice := range report.PopularServices {
				fmt.Fprintf(w, "%s\t%d\n", slice.Label, slice.Count)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newInsightsCmd(load configLoader, opts *rootOptions) *cobra.Command {
	var shopID string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate AI business insights for a shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), cmd, load, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			shop, err := a.Shops.Detail(cmd.Context(), shopID)
			if err != nil {
				return err
			}
			res := a.Insights.Generate(cmd.Context(), *shop)
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]any{
					"insights": res.Display(),
					"fallback": res.Fallback(),
				})
			}
			_, err = fmt.Fprintln(out, res.Display())
			return err
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newLoginCheckCmd(load configLoader, opts *rootOptions) *cobra.Command {
	var req auth.LoginRequest

	cmd := &cobra.Command{
		Use:   "login-check",
		Short: "Verify a seeded user's credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("SHOPCTL_PASSWORD")
			}
			a, err := bootstrap(cmd.Context(), cmd, load, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.Auth.Login(cmd.Context(), req)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil {
					return fmt.Errorf("login rejected: %s", typed.Message())
				}
				return err
			}
			defer func() { _ = a.Auth.Logout(cmd.Context(), resp.SessionID) }()

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, resp.User)
			}
			fmt.Fprintf(out, "ok: %s (%s) role=%s dashboard=%s\n", resp.User.Name, resp.User.Email, resp.User.Role, resp.Dashboard)
			if resp.User.ShopID != "" {
				fmt.Fprintf(out, "shop: %s\n", resp.User.ShopID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (or SHOPCTL_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
