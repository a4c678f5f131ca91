package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb - create the database and app user if missing")
	fmt.Println("  migrate COMMAND [args] - run a migration command (up, down, status, ...)")
	fmt.Println("  importlesson -module MODULE_ID -file PATH - convert a generated lesson document and save it")
	fmt.Println("  mintjwt -user USER_ID [-name NAME] [-email EMAIL] [-roles ROLE,...] - mint a local access token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("importlesson", flag.ExitOnError)
	importModule := importCmd.String("module", "", "The module the imported lesson belongs to.")
	importFile := importCmd.String("file", "", "Path to the generated lesson document (JSON).")

	mintCmd := flag.NewFlagSet("mintjwt", flag.ExitOnError)
	mintUser := mintCmd.String("user", "", "The subject user ID.")
	mintName := mintCmd.String("name", "", "The user's display name.")
	mintEmail := mintCmd.String("email", "", "The user's email.")
	mintRoles := mintCmd.String("roles", "", "Comma-separated roles.")

	switch args[1] {
	case "createdb":
		return cli.createDB()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "importlesson":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importModule == "" || *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importLesson(*importModule, *importFile)
	case "mintjwt":
		if err := mintCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *mintUser == "" {
			mintCmd.Usage()
			return errHelp
		}
		return cli.mintJWT(*mintUser, *mintName, *mintEmail, *mintRoles)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) openDB() (*sqlx.DB, error) {
	db, err := database.Open(cli.conf)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
