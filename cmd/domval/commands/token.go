package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

var (
	tokenAPIFlags APIFlags
	tokenScope    string
)

var tokenCmd = &cobra.Command{
	Use:   "token <domain>",
	Short: "Show the DNS challenge for a single domain",
	Long: `Fetch one domain's validation entry and print its TXT challenge record.

Arguments:
  domain   Domain name whose challenge to fetch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, ok := model.NewTarget(args[0], tokenScope)
		if !ok {
			return &UsageError{fmt.Errorf("invalid domain %q", args[0])}
		}

		api, err := newAPIClient(&tokenAPIFlags)
		if err != nil {
			return err
		}

		resp, err := api.GetDomain(context.Background(), target.DomainName, target.ValidationScope)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", target.DomainName, err)
		}
		if resp.StatusCode != 200 {
			return ExitWithCode(2, fmt.Errorf("API returned %d for %s: %s", resp.StatusCode, target.DomainName, resp.Body))
		}

		lookup := dvapi.LookupToken(resp.Body, target.DomainName)
		fmt.Printf("Domain: %s\n", target.DomainName)
		fmt.Printf("Scope:  %s\n", target.ValidationScope)
		switch lookup.Status {
		case dvapi.TokenAlreadyValidated:
			fmt.Println("Status: already validated, no challenge needed")
		case dvapi.TokenFound:
			fmt.Printf("Record: %s\n", lookup.RecordName)
			fmt.Printf("Token:  %s\n", lookup.Token)
		case dvapi.TokenServerError:
			return ExitWithCode(2, fmt.Errorf("server error for %s: %s", target.DomainName, lookup.Detail))
		default:
			return ExitWithCode(2, fmt.Errorf("no challenge found for %s", target.DomainName))
		}

		return nil
	},
}

func init() {
	addAPIFlags(tokenCmd, &tokenAPIFlags)
	tokenCmd.Flags().StringVar(&tokenScope, "scope", string(model.ScopeDomain), "Validation scope of the entry (DOMAIN, M_HOST or S_HOST)")
}
