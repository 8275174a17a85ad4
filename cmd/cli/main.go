package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finsms-cli",
		Short: "FinSMS CLI tool",
		Long:  `A command line interface for interacting with the FinSMS ingestion API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinSMS API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(billsCmd())
	rootCmd.AddCommand(forecastCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func ingestCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Submit a raw message for ingestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"account_id": accountID,
				"text":       args[0],
			}
			return postJSON("/api/v1/ingest", payload)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID the message belongs to")
	cmd.MarkFlagRequired("account")

	return cmd
}

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Bill operations",
	}

	var status string
	listCmd := &cobra.Command{
		Use:   "list [account-id]",
		Short: "List bills for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/accounts/" + args[0] + "/bills"
			if status != "" {
				path += "?status=" + status
			}
			return getJSON(path)
		},
	}
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, paid, overdue)")

	statsCmd := &cobra.Command{
		Use:   "stats [account-id]",
		Short: "Show bill totals for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/accounts/" + args[0] + "/bills/stats")
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark pending bills past their due date as overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/bills/sweep", nil)
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(statsCmd)
	cmd.AddCommand(sweepCmd)

	return cmd
}

func forecastCmd() *cobra.Command {
	var income, expenses, emi, savings string

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Predict next month's cash flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"monthly_income":   income,
				"monthly_expenses": expenses,
				"monthly_emi":      emi,
				"savings":          savings,
			}
			return postJSON("/api/v1/forecast/cashflow", payload)
		},
	}

	cmd.Flags().StringVar(&income, "income", "0", "Monthly income")
	cmd.Flags().StringVar(&expenses, "expenses", "0", "Monthly expenses")
	cmd.Flags().StringVar(&emi, "emi", "0", "Monthly EMI payments")
	cmd.Flags().StringVar(&savings, "savings", "0", "Current savings")
	cmd.MarkFlagRequired("income")

	return cmd
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func postJSON(path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(data)), 200))
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		fmt.Println(string(data))
		return nil
	}

	printJSON(parsed)
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
