package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"okuyorum-admin/models"
)

func newLoginCmd(a *app) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Oturum aç",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(username) == "" {
				var ok bool
				if username, ok = a.term.ask("Kullanıcı adı: "); !ok {
					return fmt.Errorf("read username: unexpected end of input")
				}
			}
			password, err := a.term.readPassword("Şifre: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			resp, err := a.authSvc.Login(cmd.Context(), username, password)
			if err != nil {
				a.fb.Failure("Giriş başarısız", err)
				return reported(err)
			}
			if err := a.store.SaveLogin(resp.Data.Token, resp.Data.UserID); err != nil {
				return err
			}
			a.logger.Info().Int64("user_id", resp.Data.UserID).Msg("logged in")

			name := resp.Data.Username
			if name == "" {
				name = username
			}
			a.fb.Success("Giriş başarılı", "Hoş geldiniz, "+name)
			if resp.Data.Role != "" && resp.Data.Role != models.RoleAdmin {
				a.printf("Not: yönetim komutları %s yetkisi gerektirir.\n", models.RoleAdmin)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Oturumu kapat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.fb.Success("Çıkış yapıldı", "")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Oturumdaki kullanıcıyı göster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.auth.CurrentUser()
			if s == nil {
				a.printf("Oturum açılmamış.\n")
				return nil
			}
			a.printf("Kullanıcı ID : %d\n", s.UserID)
			a.printf("Kullanıcı adı: %s\n", orDash(s.Username))
			a.printf("Rol          : %s\n", orDash(s.Role))
			if !s.ExpiresAt.IsZero() {
				a.printf("Geçerlilik   : %s\n", s.ExpiresAt.Format("2006-01-02 15:04"))
			}
			if !remote {
				return nil
			}
			admin, err := a.auth.IsAdmin(cmd.Context())
			if err != nil {
				a.fb.Failure("Yetki kontrolü başarısız", err)
				return reported(err)
			}
			a.printf("Yönetici     : %t (sunucu)\n", admin)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "check", false, "ask the backend whether the account is an admin")
	return cmd
}
