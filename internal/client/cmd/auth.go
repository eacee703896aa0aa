package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type authClient struct {
	serverURL *string
}

func newAuthCmd(serverURL *string) *cobra.Command {
	a := &authClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "auth", Short: "Authentication commands"}
	cmd.AddCommand(&cobra.Command{Use: "register", Short: "Register and store token", RunE: a.register})
	cmd.AddCommand(&cobra.Command{Use: "login", Short: "Login and store token", RunE: a.login})
	return cmd
}

func (a *authClient) register(cmd *cobra.Command, args []string) error {
	token, err := a.authenticate(cmd, *a.serverURL+"/register")
	if err != nil {
		return err
	}
	if err := saveToken(token); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Registered")
	return nil
}

func (a *authClient) login(cmd *cobra.Command, args []string) error {
	token, err := a.authenticate(cmd, *a.serverURL+"/login")
	if err != nil {
		return err
	}
	if err := saveToken(token); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
	return nil
}

// authenticate prompts for credentials, posts them and returns the issued
// access token.
func (a *authClient) authenticate(cmd *cobra.Command, url string) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(cmd.OutOrStdout(), "Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return "", err
	}
	body := map[string]string{"email": email, "password": string(password)}
	b, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("authentication failed: %s", resp.Status)
	}
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("server returned no access token")
	}
	return result.AccessToken, nil
}

func promptPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	return pass, err
}

func tokenPath() string {
	home, _ := os.UserHomeDir()
	return home + string(os.PathSeparator) + ".rechigpt_token"
}

func saveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return "", fmt.Errorf("no access token, please login")
	}
	return strings.TrimSpace(string(b)), nil
}
