package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cashbook-cli",
		Short: "Cashbook CLI tool",
		Long:  `A command line interface for interacting with the cashbook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the cashbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balancesCmd := &cobra.Command{
		Use:   "balances",
		Short: "Show per-channel balances",
		Run: func(cmd *cobra.Command, args []string) {
			month, _ := cmd.Flags().GetString("month")
			path := "/api/v1/balances"
			if month != "" {
				path += "?month=" + month
			}
			printBalances(path)
		},
	}
	balancesCmd.Flags().String("month", "", "Month in YYYY-MM form (defaults to current)")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a month's summary",
		Run: func(cmd *cobra.Command, args []string) {
			month, _ := cmd.Flags().GetString("month")
			if month == "" {
				fmt.Println("--month is required")
				os.Exit(1)
			}
			printJSON("/api/v1/summary?month=" + month)
		},
	}
	summaryCmd.Flags().String("month", "", "Month in YYYY-MM form")

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Show one day's totals",
		Run: func(cmd *cobra.Command, args []string) {
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().UTC().Format("2006-01-02")
			}
			printJSON("/api/v1/daily?date=" + date)
		},
	}
	dailyCmd.Flags().String("date", "", "Date in YYYY-MM-DD form (defaults to today)")

	monthsCmd := &cobra.Command{
		Use:   "months",
		Short: "List months with recorded entries",
		Run: func(cmd *cobra.Command, args []string) {
			printJSON("/api/v1/months")
		},
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}

	rootCmd.AddCommand(balancesCmd, summaryCmd, dailyCmd, monthsCmd, healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fetch(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func printJSON(path string) {
	body := fetch(path)

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(out))
		return
	}

	var list []any
	if err := json.Unmarshal(body, &list); err == nil {
		out, _ := json.MarshalIndent(list, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Println(string(body))
}

func printBalances(path string) {
	body := fetch(path)

	var balances []struct {
		IncomeType       string `json:"incomeType"`
		CarryOver        string `json:"carryOver"`
		CurrentIncome    string `json:"currentIncome"`
		CurrentExpenses  string `json:"currentExpenses"`
		AvailableBalance string `json:"availableBalance"`
	}
	if err := json.Unmarshal(body, &balances); err != nil {
		fmt.Println(string(body))
		return
	}

	for _, b := range balances {
		fmt.Printf("%-16s carry=%-12s income=%-12s expenses=%-12s available=%s\n",
			b.IncomeType, b.CarryOver, b.CurrentIncome, b.CurrentExpenses, b.AvailableBalance)
	}
}

func checkHealth() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/ready")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Health check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Health check PASSED\n")
	fmt.Printf("Status: %s\n", result["status"])
}
