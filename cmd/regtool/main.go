// Command regtool registers a customer account directly against the
// configured storage backend. Useful for seeding the first account in a
// fresh environment without going through the HTTP surface.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/server"
	"github.com/akarpov87/custauth/internal/server/auth"
	"github.com/akarpov87/custauth/internal/server/config"
	"github.com/akarpov87/custauth/internal/server/email"
	"github.com/akarpov87/custauth/internal/server/services"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	manager, err := server.NewRepositoryManager(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	defer manager.Close()

	issuer := auth.NewIssuer(
		[]byte(cfg.SessionSecretKey), []byte(cfg.ResetSecretKey),
		cfg.SessionTokenValidity, cfg.ResetTokenValidity,
	)
	identity := services.NewIdentityService(manager, issuer, email.NewMemorySender(), cfg)

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	emailAddr, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading email: %w", err)
	}
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" {
		return errors.New("email must not be empty")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}
	if len(password) == 0 {
		return errors.New("password must not be empty")
	}
	defer common.WipeByteArray(password)

	created, err := identity.Register(ctx, emailAddr, string(password), nil)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("account %s already exists", emailAddr)
		}
		return fmt.Errorf("registration error: %w", err)
	}

	fmt.Printf("registered %s\n", created.Email)
	return nil
}
