package main

import (
	"fmt"
	"syscall"

	"github.com/darasahq/darasa/storage/database"
)

// createDB bootstraps the app user and database. The admin password is
// prompted when not configured so it never has to live in an env file.
func (cli *commandLine) createDB() error {
	if cli.conf.Database.AdminUser != "" && cli.conf.Database.AdminPassword == "" {
		fmt.Printf("Enter password for %s:", cli.conf.Database.AdminUser)
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		cli.conf.Database.AdminPassword = string(pwd)
	}
	return database.CreateIfNotExist(cli.conf)
}
