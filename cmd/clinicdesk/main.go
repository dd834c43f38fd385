package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/dashboard/resources"
	"github.com/clinicdesk/clinicdesk/internal/dashboard/screen"
	"github.com/clinicdesk/clinicdesk/pkg/client"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinicdesk",
		Short: "ClinicDesk admin CLI",
		Long:  "Drives the resource gateway the way the dashboard does: one client, one store per resource.",
	}

	rootCmd.AddCommand(resourcesCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(actionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScreen(name string) (*screen.Screen, error) {
	all := resources.All()
	desc, ok := all[name]
	if !ok {
		known := make([]string, 0, len(all))
		for k := range all {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown resource %q (one of: %s)", name, strings.Join(known, ", "))
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	gw := client.New(client.Credentials{
		BaseURL:  cfg.GatewayURL,
		Token:    cfg.APIToken,
		ClinicID: cfg.ClinicID,
	})
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return screen.New(gw, desc, screen.WithLogger(logger)), nil
}

func resourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the known resource names",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0)
			for name := range resources.All() {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List a resource collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, err := newScreen(args[0])
			if err != nil {
				return err
			}
			if err := scr.Mount(cmd.Context()); err != nil {
				return err
			}
			scr.SetSearch(search)
			return printRecords(scr.Visible())
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring filter")
	return cmd
}

func addCmd() *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "add <resource>",
		Short: "Create a record from --field key=value pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, err := newScreen(args[0])
			if err != nil {
				return err
			}
			if err := scr.Mount(cmd.Context()); err != nil {
				return err
			}
			scr.StartAdd()
			for _, f := range fields {
				k, v, ok := strings.Cut(f, "=")
				if !ok {
					return fmt.Errorf("malformed --field %q, want key=value", f)
				}
				scr.SetField(k, parseFieldValue(v))
			}
			if err := scr.Submit(cmd.Context()); err != nil {
				return fmt.Errorf("%s", scr.Notice())
			}
			return printRecords(scr.Visible())
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Record field, repeatable (key=value; comma-separates list values)")
	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, err := newScreen(args[0])
			if err != nil {
				return err
			}
			if err := scr.Mount(cmd.Context()); err != nil {
				return err
			}
			scr.RequestDelete(args[1])
			if !yes {
				fmt.Printf("Delete %s %s? [y/N]: ", args[0], args[1])
				var answer string
				fmt.Scanln(&answer)
				if !strings.EqualFold(answer, "y") {
					scr.CancelDelete()
					fmt.Println("cancelled")
					return nil
				}
			}
			if err := scr.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <resource> <id> <status>",
		Short: "Set a record's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, err := newScreen(args[0])
			if err != nil {
				return err
			}
			if err := scr.SetStatus(cmd.Context(), args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("updated")
			return nil
		},
	}
}

func actionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action <resource> <id> <name>",
		Short: "Invoke a named sub-endpoint, e.g. mark-paid on a lab booking",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, err := newScreen(args[0])
			if err != nil {
				return err
			}
			if err := scr.Store().Action(cmd.Context(), args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

// parseFieldValue turns comma-separated values into a list, matching the
// slot and test-id fields.
func parseFieldValue(v string) interface{} {
	if strings.Contains(v, ",") {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	}
	return v
}

func printRecords(records []client.Record) error {
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		fmt.Println(string(line))
	}
	fmt.Fprintf(os.Stderr, "%d record(s)\n", len(records))
	return nil
}
