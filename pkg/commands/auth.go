package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/auth"
	authrunner "tableflip.dev/bizdesk/pkg/runner/auth"
)

func addLogin(topLevel *cobra.Command) {
	creds := auth.Credentials{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session on this device.",
		Long: `Sign in against the auth server. Missing email, role or password are
prompted for. The role must match the one the account was registered with.`,
		Example: `
bizdesk login
bizdesk login --email asha@example.com --role Admin
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			var err error
			if creds.Email == "" {
				if creds.Email, err = promptText(in, out, "Email", notBlank("email")); err != nil {
					return err
				}
			}
			if creds.Role == "" {
				if creds.Role, err = promptRole(in, out); err != nil {
					return err
				}
			}
			if creds.Password == "" {
				if creds.Password = os.Getenv("BIZDESK_PASSWORD"); creds.Password == "" {
					if creds.Password, err = promptPassword(out, "Password"); err != nil {
						return err
					}
				}
			}

			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			pp, err := output.Printer(out)
			if err != nil {
				return err
			}
			l := authrunner.Login{Sessions: e.Sessions(), Printer: pp, Credentials: creds}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email.")
	cmd.Flags().StringVar(&creds.Role, "role", "", "One of Admin, Employee or Referral.")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Password, prompted for when empty. BIZDESK_PASSWORD is also read.")

	topLevel.AddCommand(cmd)
}

func addRegister(topLevel *cobra.Command) {
	reg := auth.Registration{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the auth server.",
		Example: `
bizdesk register --first-name Asha --email asha@example.com --mobile 9876543210 --role Admin
bizdesk register --first-name Ravi --email ravi@example.com --mobile 9000000000 --role Employee --picture ./ravi.png
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			var err error
			for _, f := range []struct {
				label string
				v     *string
			}{
				{"First name", &reg.FirstName},
				{"Email", &reg.Email},
				{"Mobile number", &reg.MobileNumber},
			} {
				if *f.v == "" {
					if *f.v, err = promptText(in, out, f.label, notBlank(f.label)); err != nil {
						return err
					}
				}
			}
			if reg.Role == "" {
				if reg.Role, err = promptRole(in, out); err != nil {
					return err
				}
			}
			if reg.Password == "" {
				if reg.Password = os.Getenv("BIZDESK_PASSWORD"); reg.Password == "" {
					if reg.Password, err = promptPassword(out, "Password"); err != nil {
						return err
					}
					if reg.ConfirmPassword, err = promptPassword(out, "Confirm password"); err != nil {
						return err
					}
				}
			}
			if reg.ConfirmPassword == "" {
				reg.ConfirmPassword = reg.Password
			}

			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			pp, err := output.Printer(out)
			if err != nil {
				return err
			}
			r := authrunner.Register{Client: auth.NewHTTPClient(e.Config.AuthURL), Printer: pp, Registration: reg}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "First name.")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Account email.")
	cmd.Flags().StringVar(&reg.MobileNumber, "mobile", "", "Mobile number.")
	cmd.Flags().StringVar(&reg.Role, "role", "", "One of Admin, Employee or Referral.")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password of at least 6 characters, prompted for when empty.")
	cmd.Flags().StringVar(&reg.ConfirmPassword, "confirm-password", "", "Repeat of the password, defaults to --password.")
	cmd.Flags().StringVar(&reg.ProfilePicture, "picture", "", "Optional profile picture to upload.")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear all local data.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			pp, err := output.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			l := authrunner.Logout{Sessions: e.Sessions(), Printer: pp}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoAmI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			pp, err := output.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			w := authrunner.WhoAmI{Sessions: e.Sessions(), Printer: pp}
			return output.HandleError(w.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
