package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	tenant  string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payables-cli",
		Short: "Payables CLI tool",
		Long:  `A command line interface for interacting with the Payables API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Payables API")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "Tenant ID sent as X-Tenant-ID (required)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Schedule commands
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the payment schedule",
		Run: func(cmd *cobra.Command, args []string) {
			asOf, _ := cmd.Flags().GetString("as-of")
			showSchedule(asOf)
		},
	}
	scheduleCmd.Flags().String("as-of", "", "Reference date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(scheduleCmd)

	// Supplier commands
	suppliersCmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Supplier operations",
	}
	suppliersListCmd := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		Run: func(cmd *cobra.Command, args []string) {
			listSuppliers()
		},
	}
	suppliersCmd.AddCommand(suppliersListCmd)
	rootCmd.AddCommand(suppliersCmd)

	// Payment commands
	payCmd := &cobra.Command{
		Use:   "pay <account-id>",
		Short: "Record a payment for an account occurrence",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			period, _ := cmd.Flags().GetString("period")
			invoices, _ := cmd.Flags().GetStringSlice("invoice")
			recipient, _ := cmd.Flags().GetString("recipient")
			recordPayment(args[0], period, invoices, recipient)
		},
	}
	payCmd.Flags().String("period", "", "Billing period to settle (YYYY-MM)")
	payCmd.Flags().StringSlice("invoice", nil, "Invoice number (repeatable)")
	payCmd.Flags().String("recipient", "", "Who received the payment")
	_ = payCmd.MarkFlagRequired("period")
	_ = payCmd.MarkFlagRequired("invoice")
	_ = payCmd.MarkFlagRequired("recipient")
	rootCmd.AddCommand(payCmd)

	// History commands
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded payments",
		Run: func(cmd *cobra.Command, args []string) {
			supplierID, _ := cmd.Flags().GetString("supplier")
			showHistory(supplierID)
		},
	}
	historyCmd.Flags().String("supplier", "", "Filter by supplier ID")
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func showSchedule(asOf string) {
	path := "/api/v1/schedule/grouped"
	if asOf != "" {
		path += "?as_of=" + url.QueryEscape(asOf)
	}

	body := doRequest(http.MethodGet, path, nil)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func listSuppliers() {
	body := doRequest(http.MethodGet, "/api/v1/suppliers", nil)

	var suppliers []map[string]any
	if err := json.Unmarshal(body, &suppliers); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, s := range suppliers {
		name, _ := s["name"].(string)
		id, _ := s["id"].(string)
		fmt.Printf("%s  %s\n", id, truncate(name, 40))
	}
}

func recordPayment(accountID, period string, invoices []string, recipient string) {
	payload := map[string]any{
		"period":          period,
		"invoice_numbers": invoices,
		"recipient":       recipient,
	}

	body := doRequest(http.MethodPost, "/api/v1/accounts/"+accountID+"/payments", payload)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Payment recorded for %s\n", period)
	printJSON(result)
}

func showHistory(supplierID string) {
	path := "/api/v1/payments"
	if supplierID != "" {
		path += "?supplier_id=" + url.QueryEscape(supplierID)
	}

	body := doRequest(http.MethodGet, path, nil)

	var entries []map[string]any
	if err := json.Unmarshal(body, &entries); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(entries)
}

func doRequest(method, path string, payload any) []byte {
	if tenant == "" {
		fmt.Println("--tenant is required")
		os.Exit(1)
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("X-Tenant-ID", tenant)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(strings.TrimRight(string(data), "\n"))
}
