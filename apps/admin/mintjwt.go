package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	echoapi "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
)

// mintJWT signs a local access token with the shared secret; handy for
// poking authed endpoints with curl.
func (cli *commandLine) mintJWT(userID, name, email, roles string) error {
	usr := user.User{
		ID:       userID,
		Name:     name,
		Username: core.CleanString(name, true /* lower */),
		Email:    core.CleanString(email, true /* lower */),
	}
	if roles != "" {
		for _, role := range strings.Split(roles, ",") {
			role = core.CleanString(role, true /* lower */)
			if !user.KnownRole(role) {
				return errors.Errorf("unknown role %q; valid roles: %s", role, strings.Join(user.AllRoles, ", "))
			}
			usr.Roles = append(usr.Roles, role)
		}
	}

	token, err := echoapi.GenerateToken(cli.conf, echoapi.GetUserClaims(cli.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	fmt.Println(token)
	return nil
}
