package sitecmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/cliconfig"
	"github.com/zenGate-Global/palmyra-hosting/apps/internal/stack"
	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// maxSettleSteps bounds `site advance --settle`; a full setup takes four checkpoints.
const maxSettleSteps = 8

// Command groups site lifecycle and provisioning commands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Create, inspect and provision user sites",
	}

	cmd.AddCommand(
		createCommand(),
		getCommand(),
		listCommand(),
		statusCommand(),
		deleteCommand(),
		advanceCommand(),
		resetCommand(),
		checkHTTPSCommand(),
		sweepCommand(),
	)
	return cmd
}

func createCommand() *cobra.Command {
	var (
		userID     string
		templateID string
		input      service.CreateInput
	)

	c := &cobra.Command{
		Use:   "create",
		Short: "Request a new site; provisioning happens on advance or sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if input.UserID, err = uuid.Parse(userID); err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
			if input.TemplateID, err = uuid.Parse(templateID); err != nil {
				return fmt.Errorf("invalid template id: %w", err)
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			site, err := svc.Create(cmd.Context(), input)
			if err != nil {
				return describe(err)
			}
			printSite(cmd.OutOrStdout(), site)
			return nil
		},
	}

	c.Flags().StringVar(&userID, "user-id", "", "Owner user id")
	c.Flags().StringVar(&templateID, "template-id", "", "Template id")
	c.Flags().StringVar(&input.Domain, "domain", "", "Fully qualified domain")
	c.Flags().StringVar(&input.DNSProvider, "dns-provider", service.DNSProviderCloudflare, "DNS provider")

	_ = c.MarkFlagRequired("user-id")
	_ = c.MarkFlagRequired("template-id")
	_ = c.MarkFlagRequired("domain")
	return c
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <site-id>",
		Short: "Show a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSiteID(args[0])
			if err != nil {
				return err
			}
			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			site, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printSite(cmd.OutOrStdout(), site)
			return nil
		},
	}
}

func listCommand() *cobra.Command {
	var (
		statuses []string
		userID   string
		page     int
		pageSize int
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := service.ListOptions{Page: page, PageSize: pageSize}
			for _, name := range statuses {
				status, err := service.ParseStatus(name)
				if err != nil {
					return err
				}
				opts.Statuses = append(opts.Statuses, status)
			}
			if userID != "" {
				id, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid user id: %w", err)
				}
				opts.UserID = &id
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := printSites(cmd.OutOrStdout(), res.Sites); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d sites\n", res.Page, res.TotalPages, res.TotalItems)
			return nil
		},
	}

	c.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (repeatable or comma separated)")
	c.Flags().StringVar(&userID, "user-id", "", "Filter by owner")
	c.Flags().IntVar(&page, "page", 1, "Page number")
	c.Flags().IntVar(&pageSize, "page-size", 20, "Page size")
	return c
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <site-id> <Active|Inactive|Maintenance|Suspended>",
		Short: "Change the lifecycle status of a provisioned site",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSiteID(args[0])
			if err != nil {
				return err
			}
			target, err := service.ParseStatus(args[1])
			if err != nil {
				return err
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			var site service.Site
			switch target {
			case service.StatusActive:
				site, err = svc.Activate(cmd.Context(), id)
			case service.StatusInactive:
				site, err = svc.Deactivate(cmd.Context(), id)
			case service.StatusMaintenance:
				site, err = svc.Maintenance(cmd.Context(), id)
			case service.StatusSuspended:
				site, err = svc.Suspend(cmd.Context(), id)
			default:
				return fmt.Errorf("status %s is managed by the provisioning engine", target)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Site %s is now %s.\n", site.ID, site.Status)
			return nil
		},
	}
}

func deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site-id>",
		Short: "Delete a site and release its server slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSiteID(args[0])
			if err != nil {
				return err
			}
			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Site %s deleted.\n", id)
			return nil
		},
	}
}

func advanceCommand() *cobra.Command {
	var settle bool

	c := &cobra.Command{
		Use:   "advance <site-id>",
		Short: "Run the next setup checkpoint for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSiteID(args[0])
			if err != nil {
				return err
			}
			hosting, err := openStack(cmd)
			if err != nil {
				return err
			}
			defer hosting.Close()

			out := cmd.OutOrStdout()
			for step := 0; step < maxSettleSteps; step++ {
				site, err := hosting.Engine.Advance(cmd.Context(), id)
				if err != nil {
					var cpErr *service.CheckpointError
					if errors.As(err, &cpErr) {
						return fmt.Errorf("%w (retryable: %t)", err, cpErr.Retryable())
					}
					return err
				}
				fmt.Fprintf(out, "%s  %s/%s\n", site.ID, site.Status, site.Progress)
				if !settle || !site.Status.InSetup() {
					return nil
				}
			}
			return fmt.Errorf("site %s did not settle after %d checkpoints", id, maxSettleSteps)
		},
	}

	c.Flags().BoolVar(&settle, "settle", false, "Keep advancing until setup completes or fails")
	return c
}

func resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <site-id>",
		Short: "Clear a SetupError so the site is retried from its checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSiteID(args[0])
			if err != nil {
				return err
			}
			hosting, err := openStack(cmd)
			if err != nil {
				return err
			}
			defer hosting.Close()

			site, err := hosting.Engine.Reset(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s/%s\n", site.ID, site.Status, site.Progress)
			return nil
		},
	}
}

func checkHTTPSCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-https <site-id>",
		Short: "Check https://<domain> for the site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSiteID(args[0])
			if err != nil {
				return err
			}
			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.CheckHTTPS(cmd.Context(), id)
			if err != nil {
				return err
			}
			if res.Working {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is working (HTTP %d)\n", res.URL, res.StatusCode)
				return nil
			}
			detail := res.Error
			if detail == "" {
				detail = fmt.Sprintf("HTTP %d", res.StatusCode)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not working: %s\n", res.URL, detail)
			return nil
		},
	}
}

func sweepCommand() *cobra.Command {
	var watch bool

	c := &cobra.Command{
		Use:   "sweep",
		Short: "Advance every site that still needs setup by one checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			hosting, err := openStack(cmd)
			if err != nil {
				return err
			}
			defer hosting.Close()

			if watch {
				return hosting.Sweeper.Run(cmd.Context())
			}
			report, err := hosting.Sweeper.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "visited=%d advanced=%d failed=%d busy=%d deferred=%d exhausted=%d\n",
				report.Visited, report.Advanced, report.Failed, report.Busy, report.Deferred, report.Exhausted)
			return nil
		},
	}

	c.Flags().BoolVar(&watch, "watch", false, "Keep sweeping on SWEEP_INTERVAL until interrupted")
	return c
}

func openService(cmd *cobra.Command) (*service.Service, func(), error) {
	stores, cfg, err := cliconfig.OpenStores(cmd.Context(), cmd, false)
	if err != nil {
		return nil, nil, err
	}
	_, svc := stack.Services(stores, cfg, nil)
	return svc, stores.Close, nil
}

func openStack(cmd *cobra.Command) (*stack.Stack, error) {
	logger, err := cliconfig.Logger(cmd)
	if err != nil {
		return nil, err
	}
	stores, cfg, err := cliconfig.OpenStores(cmd.Context(), cmd, false)
	if err != nil {
		return nil, err
	}
	hosting, err := stack.Build(stores, cfg, nil, logger)
	if err != nil {
		stores.Close()
		return nil, err
	}
	return hosting, nil
}

func parseSiteID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid site id: %w", err)
	}
	return id, nil
}

func describe(err error) error {
	var v *service.ValidationError
	if errors.As(err, &v) {
		return fmt.Errorf("%w: %v", err, map[string][]string(v.Fields))
	}
	return err
}

func printSite(w io.Writer, s service.Site) {
	server := "-"
	if s.ServerID != nil {
		server = s.ServerID.String()
	}
	lastError := "-"
	if s.LastError != nil {
		lastError = *s.LastError
	}
	fmt.Fprintf(w, "id:        %s\n", s.ID)
	fmt.Fprintf(w, "domain:    %s\n", s.Domain)
	fmt.Fprintf(w, "status:    %s/%s\n", s.Status, s.Progress)
	fmt.Fprintf(w, "server:    %s\n", server)
	fmt.Fprintf(w, "root:      %s\n", s.RootDirectory)
	fmt.Fprintf(w, "attempts:  %d\n", s.SetupAttempts)
	fmt.Fprintf(w, "lastError: %s\n", lastError)
}

func printSites(w io.Writer, sites []service.Site) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOMAIN\tSTATUS\tPROGRESS\tATTEMPTS")
	for _, s := range sites {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", s.ID, strings.ToLower(s.Domain), s.Status, s.Progress, s.SetupAttempts)
	}
	return tw.Flush()
}
