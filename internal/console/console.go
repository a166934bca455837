package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"post-board/internal/service"
)

// Console is the trusted operator channel. It reads commands line by line
// from the server process's stdin; this is the only place a user's role can
// be changed, role changes are not reachable over HTTP.
type Console struct {
	auth   service.AuthService
	logger *logrus.Logger
}

func New(auth service.AuthService, logger *logrus.Logger) *Console {
	return &Console{auth: auth, logger: logger}
}

// Run processes commands from in until in is exhausted or an /exit command
// is read. Prompts and command results go to out.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "/exit":
			fmt.Fprintln(out, "bye")
			return nil
		case strings.HasPrefix(line, "/role"):
			c.handleRole(ctx, out, line)
		default:
			fmt.Fprintln(out, "unknown command, use /role <email> <User|Admin> or /exit")
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func (c *Console) handleRole(ctx context.Context, out io.Writer, line string) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		fmt.Fprintln(out, "usage: /role <email> <User|Admin>")
		return
	}

	user, err := c.auth.ChangeRole(ctx, parts[1], parts[2])
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	c.logger.Infof("role changed: %s is now a %s", user.Email, user.Role)
	fmt.Fprintf(out, "role updated: %s is now a %s\n", user.Email, user.Role)
}
