package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newChatCmd(serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err != nil {
				return err
			}
			message := strings.Join(args, " ")
			b, _ := json.Marshal(map[string]string{"message": message})
			req, err := http.NewRequest(http.MethodPost, *serverURL+"/chat", bytes.NewReader(b))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusUnauthorized {
				return fmt.Errorf("unauthorized, please login")
			}
			if resp.StatusCode >= 300 {
				raw, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("chat failed: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
			}
			var out struct {
				Response string `json:"response"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Response)
			return nil
		},
	}
}

func newHistoryCmd(serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recent exchanges, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err != nil {
				return err
			}
			req, err := http.NewRequest(http.MethodGet, *serverURL+"/chat/history", nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusUnauthorized {
				return fmt.Errorf("unauthorized, please login")
			}
			if resp.StatusCode >= 300 {
				return fmt.Errorf("history failed: %s", resp.Status)
			}
			var exchanges []struct {
				Message   string    `json:"message"`
				Response  string    `json:"response"`
				Timestamp time.Time `json:"timestamp"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&exchanges); err != nil {
				return err
			}
			for _, ex := range exchanges {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] you: %s\n", ex.Timestamp.Local().Format(time.RFC3339), ex.Message)
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] bot: %s\n", ex.Timestamp.Local().Format(time.RFC3339), ex.Response)
			}
			return nil
		},
	}
}
