package templatecmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-hosting/apps/cli/cmd/cliconfig"
	"github.com/zenGate-Global/palmyra-hosting/apps/internal/stack"
	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// Command groups site template commands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage site templates",
	}

	cmd.AddCommand(createCommand(), getCommand())
	return cmd
}

func createCommand() *cobra.Command {
	var input service.TemplateInput

	c := &cobra.Command{
		Use:   "create",
		Short: "Create a template with its server sizing floor",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			tpl, err := svc.CreateTemplate(cmd.Context(), input)
			if err != nil {
				var v *service.ValidationError
				if errors.As(err, &v) {
					return fmt.Errorf("%w: %v", err, map[string][]string(v.Fields))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%s).\n", tpl.Slug, tpl.ID)
			return nil
		},
	}

	c.Flags().StringVar(&input.Name, "name", "", "Display name")
	c.Flags().StringVar(&input.Slug, "slug", "", "Unique slug")
	c.Flags().IntVar(&input.MinCPU, "min-cpu", 0, "Minimum server vCPU")
	c.Flags().IntVar(&input.MinRAMMB, "min-ram-mb", 0, "Minimum server memory in MB")
	c.Flags().IntVar(&input.MinDiskGB, "min-disk-gb", 0, "Minimum server disk in GB")

	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("slug")
	return c
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <template-id>",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid template id: %w", err)
			}

			svc, closeFn, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			tpl, err := svc.GetTemplate(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  cpu>=%d ram>=%dMB disk>=%dGB\n",
				tpl.ID, tpl.Slug, tpl.Name, tpl.MinCPU, tpl.MinRAMMB, tpl.MinDiskGB)
			return nil
		},
	}
}

func openService(cmd *cobra.Command) (*service.Service, func(), error) {
	stores, cfg, err := cliconfig.OpenStores(cmd.Context(), cmd, false)
	if err != nil {
		return nil, nil, err
	}
	_, svc := stack.Services(stores, cfg, nil)
	return svc, stores.Close, nil
}
