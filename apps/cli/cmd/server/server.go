package servercmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/cliconfig"
	"github.com/zenGate-Global/palmyra-hosting/apps/internal/stack"
	"github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
)

// Command groups hosting server registry commands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the hosting server pool",
	}

	cmd.AddCommand(registerCommand(), listCommand(), statusCommand())
	return cmd
}

func registerCommand() *cobra.Command {
	var (
		input  service.RegisterInput
		status string
	)

	c := &cobra.Command{
		Use:   "register",
		Short: "Add a server to the allocation pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := service.ParseStatus(status)
			if err != nil {
				return err
			}
			input.Status = parsed

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			srv, err := svc.Register(cmd.Context(), input)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered server %s (%s) with %d slots.\n", srv.Name, srv.ID, srv.MaxSites)
			return nil
		},
	}

	c.Flags().StringVar(&input.Name, "name", "", "Server name")
	c.Flags().StringVar(&input.Provider, "provider", "", "Cloud or hosting provider")
	c.Flags().StringVar(&input.InstanceType, "instance-type", "", "Provider instance type")
	c.Flags().StringVar(&input.InstanceID, "instance-id", "", "Provider instance id")
	c.Flags().StringVar(&input.PublicIP, "public-ip", "", "Public IPv4 address used for A records")
	c.Flags().StringVar(&input.PrivateIP, "private-ip", "", "Private IP address")
	c.Flags().StringVar(&input.PanelURL, "panel-url", "", "Control panel URL")
	c.Flags().IntVar(&input.MaxSites, "max-sites", 0, "Maximum number of sites")
	c.Flags().IntVar(&input.CPU, "cpu", 0, "vCPU count")
	c.Flags().IntVar(&input.RAMMB, "ram-mb", 0, "Memory in MB")
	c.Flags().IntVar(&input.DiskGB, "disk-gb", 0, "Disk in GB")
	c.Flags().StringVar(&input.Authorization.AuthType, "auth-type", "ssh_key", "ssh_key, password or api_token")
	c.Flags().StringVar(&input.Authorization.AuthSource, "auth-source", "", "Reference to the credential (key name or secret path)")
	c.Flags().StringVar(&status, "status", "Active", "Initial status")

	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("provider")
	_ = c.MarkFlagRequired("public-ip")
	_ = c.MarkFlagRequired("max-sites")
	_ = c.MarkFlagRequired("auth-source")

	return c
}

func listCommand() *cobra.Command {
	var status string

	c := &cobra.Command{
		Use:   "list",
		Short: "List registered servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := service.ListOptions{Page: 1, PageSize: 100}
			if status != "" {
				parsed, err := service.ParseStatus(status)
				if err != nil {
					return err
				}
				opts.Status = &parsed
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
			return printServers(cmd.OutOrStdout(), res.Servers)
		},
	}

	c.Flags().StringVar(&status, "status", "", "Filter by status")
	return c
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <server-id> <Active|Inactive|Maintenance>",
		Short: "Move a server in or out of the allocation pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid server id: %w", err)
			}
			status, err := service.ParseStatus(args[1])
			if err != nil {
				return err
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			srv, err := svc.SetStatus(cmd.Context(), id, status)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Server %s is now %s.\n", srv.ID, srv.Status)
			return nil
		},
	}
}

func openService(cmd *cobra.Command) (*service.Service, func(), error) {
	stores, cfg, err := cliconfig.OpenStores(cmd.Context(), cmd, false)
	if err != nil {
		return nil, nil, err
	}
	svc, _ := stack.Services(stores, cfg, nil)
	return svc, stores.Close, nil
}

func printServers(w io.Writer, servers []service.Server) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPUBLIC IP\tSTATUS\tSITES\tCPU\tRAM MB\tDISK GB")
	for _, s := range servers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\t%d\t%d\t%d\n",
			s.ID, s.Name, s.PublicIP, s.Status, s.CurrentSiteCount, s.MaxSites, s.CPU, s.RAMMB, s.DiskGB)
	}
	return tw.Flush()
}

// describe expands validation errors into their field messages.
func describe(err error) error {
	var v *service.ValidationError
	if errors.As(err, &v) {
		return fmt.Errorf("%w: %v", err, map[string][]string(v.Fields))
	}
	return err
}
