package main

import (
	"fmt"

	"github.com/spf13/cobra"

	twocaptcha "github.com/anatolykoptev/go-twocaptcha"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		siteKey  string
		pageURL  string
		useProxy bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Submit a reCAPTCHA and print the solution token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.solver(cmd)
			if err != nil {
				return err
			}
			out, err := s.Solve(cmd.Context(), twocaptcha.ChallengeRequest{
				SiteKey:          siteKey,
				PageURL:          pageURL,
				UseProxyForSolve: useProxy,
			})
			if err != nil {
				return err
			}
			if !out.OK() {
				return fmt.Errorf("not solved: %s", out.Kind)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&siteKey, "sitekey", "", "reCAPTCHA site key (googlekey)")
	cmd.Flags().StringVar(&pageURL, "url", "", "page URL the challenge appears on")
	cmd.Flags().BoolVar(&useProxy, "use-proxy", false, "have the service solve through the configured proxy")
	_ = cmd.MarkFlagRequired("sitekey")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the account balance in USD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.solver(cmd)
			if err != nil {
				return err
			}
			bal, err := s.Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.5f\n", bal)
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var bad bool
	cmd := &cobra.Command{
		Use:   "report <ticket-id>",
		Short: "Report whether a returned solution was accepted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.solver(cmd)
			if err != nil {
				return err
			}
			out, err := s.Report(cmd.Context(), args[0], !bad)
			if err != nil {
				return err
			}
			if !out.OK() {
				return fmt.Errorf("report rejected: %s", out.Kind)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "recorded")
			return nil
		},
	}
	cmd.Flags().BoolVar(&bad, "bad", false, "report the solution as incorrect")
	return cmd
}
