package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/internal/client"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

func signInCmd(rt *runtime) *cobra.Command {
	var p client.SignInParams

	cmd := &cobra.Command{
		Use:   "sign-in",
		Short: "Sign in with a password, an email code or a ticket",
		Long: `Sign in and make the new session active.

The strategy defaults to ticket when --ticket is set, to password when
--password is set and to email_code otherwise. For email_code the one-time
code is read from standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.Strategy == "" {
				p.Strategy = defaultStrategy(p)
			}

			return rt.withApp(cmd, func(ctx context.Context, a *client.App) error {
				sess, err := a.SignIn(ctx, p, linePrompt(rt.in, cmd.ErrOrStderr()))
				if err != nil {
					return err
				}

				c := a.Clerk
				id := newIdentity(*c.Client(), sess, sess.User, sess.ActiveOrganization())
				return rt.render(id, id.writeText)
			})
		},
	}

	cmd.Flags().StringVar(&p.Strategy, "strategy", "", "password, email_code or ticket")
	cmd.Flags().StringVarP(&p.Identifier, "identifier", "i", "", "Email address")
	cmd.Flags().StringVar(&p.Password, "password", "", "Password")
	cmd.Flags().StringVar(&p.Ticket, "ticket", "", "Sign-in ticket")
	return cmd
}

func defaultStrategy(p client.SignInParams) string {
	switch {
	case p.Ticket != "":
		return models.StrategyTicket
	case p.Password != "":
		return models.StrategyPassword
	default:
		return models.StrategyEmailCode
	}
}

// linePrompt writes the label to out and reads one line from in.
func linePrompt(in io.Reader, out io.Writer) client.PromptFunc {
	r := bufio.NewReader(in)
	return func(ctx context.Context, label string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(out, "%s: ", label)

		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}
