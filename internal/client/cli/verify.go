package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText, getCode and getMultiline are indirections used to
// facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getCode = GetCode
var getMultiline = GetMultiline

// Verify prompts the user for an email address, requests a one-time code,
// then prompts for the code and exchanges it for a verified session.
//
// In dev mode the issued code is echoed so the flow can be exercised
// without a mailbox. On success the verified email is remembered for the
// rest of the run and printed back to the user.
func (a *App) Verify(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	devCode, err := a.verification.RequestCode(ctx, email)
	if err != nil {
		printlnFn("Could not send the code:", err.Error())
		return err
	}
	printlnFn("A verification code was sent to " + email)
	if devCode != "" {
		printlnFn("[dev] code:", devCode)
	}

	code, err := getCode(os.Stdout)
	if err != nil {
		return err
	}

	session, err := a.verification.SubmitCode(ctx, email, code)
	if err != nil {
		printlnFn("Verification failed:", err.Error())
		return err
	}

	a.email = session.Email
	printlnFn(fmt.Sprintf("Verified as %s (until %s)", session.Email, session.ExpiresAt.Format("15:04 Jan 2")))
	return nil
}

// Whoami prints the currently verified email, if any.
func (a *App) Whoami(ctx context.Context) error {
	session := a.verification.Current(ctx)
	if session == nil {
		a.email = ""
		printlnFn("Not verified")
		return nil
	}
	a.email = session.Email
	printlnFn(fmt.Sprintf("Verified as %s (until %s)", session.Email, session.ExpiresAt.Format("15:04 Jan 2")))
	return nil
}

// Logout drops the cached verified session.
func (a *App) Logout(ctx context.Context) error {
	a.verification.Logout(ctx)
	a.email = ""
	printlnFn("Logged out")
	return nil
}
