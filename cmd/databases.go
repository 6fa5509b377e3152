package cmd

import (
	"fmt"

	"github.com/keepick/keepick/keepass"
	"github.com/keepick/keepick/match"
	"github.com/keepick/keepick/passbolt"
	"github.com/keepick/keepick/util"
	"github.com/spf13/viper"
)

// openDatabases unlocks every configured database in the order given.
// The returned keepass slice backs window-title seeding, which server
// databases cannot provide. cleanup releases server sessions.
func openDatabases() (dbs []match.Database, kdbx []*keepass.Database, cleanup func(), err error) {
	paths := viper.GetStringSlice("database")
	keyFiles := viper.GetStringSlice("keyfile")
	password := viper.GetString("password")

	if len(paths) == 0 && !viper.GetBool("passbolt") {
		return nil, nil, nil, fmt.Errorf("no databases configured, use --database or --passbolt")
	}

	for i, path := range paths {
		keyFile := ""
		if i < len(keyFiles) {
			keyFile = keyFiles[i]
		}

		pw := password
		if pw == "" && keyFile == "" {
			pw, err = util.ReadPassword(fmt.Sprintf("Password for %v:", path))
			if err != nil {
				return nil, nil, nil, err
			}
			fmt.Println()
		}

		db, err := keepass.Open(path, pw, keyFile)
		if err != nil {
			return nil, nil, nil, err
		}
		dbs = append(dbs, db)
		kdbx = append(kdbx, db)
	}

	cleanup = func() {}
	if viper.GetBool("passbolt") {
		client, err := passbolt.NewClient()
		if err != nil {
			return nil, nil, nil, err
		}
		dbs = append(dbs, passbolt.NewDatabase(client))
		cleanup = client.Close
	}

	return dbs, kdbx, cleanup, nil
}

// seedMatches builds the initial candidate list from window-title
// association matching across the file databases.
func seedMatches(kdbx []*keepass.Database, windowTitle string) []match.Match {
	if windowTitle == "" {
		return nil
	}
	var initial []match.Match
	for _, db := range kdbx {
		initial = append(initial, db.MatchesForWindow(windowTitle)...)
	}
	return initial
}
