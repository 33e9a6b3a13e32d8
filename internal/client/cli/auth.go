package cli

import (
	"context"
	"errors"
	"os"

	"github.com/LorenzoDOrtona/life-logger/internal/client/services"
	"github.com/LorenzoDOrtona/life-logger/internal/common"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

// Login authenticates and opens the user's journal. The password bytes are
// wiped as soon as the key is derived.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Authenticate(ctx, username, string(password))
	if err != nil {
		return err
	}

	a.sess = sess
	a.journal = services.NewJournalService(a.store, a.config.JournalDir, sess, a.log)

	entries, err := a.journal.Load(ctx)
	if err != nil {
		// keep the session; the user can retry with 'reload'
		return err
	}
	printlnFn("Logged in as", username, "-", len(entries), "entries")
	return nil
}

// Register creates an account and logs nothing in; the user logs in after.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := GetPassword("Repeat password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	invite, err := GetSimpleText(a.reader, "Invite code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, username, string(password), string(confirmation), invite); err != nil {
		return err
	}
	printlnFn("Account created, you can log in now")
	return nil
}

// Logout wipes the derived key and drops the journal handle.
func (a *App) Logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.sess.Wipe()
	a.sess = nil
	a.journal = nil
	printlnFn("Logged out")
	return nil
}
