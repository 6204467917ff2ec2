// Package menu drives the interactive session: the logged-out menu, login,
// and the role-scoped action menus.
package menu

import (
	"context"
	"errors"

	"github.com/Domenick1991/airops/internal/apperrors"
	"github.com/Domenick1991/airops/internal/console"
	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/service/auth"
	"github.com/Domenick1991/airops/internal/service/booking"
	"github.com/Domenick1991/airops/internal/service/maintenance"
	"github.com/Domenick1991/airops/internal/service/reports"
	"github.com/Domenick1991/airops/internal/validation"
	"github.com/rs/zerolog"
)

type State int

const (
	StateLoggedOut State = iota
	StateRoleMenu
	StateExiting
)

const unrecognizedChoice = "Unrecognized choice!"

type Services struct {
	Auth        auth.AuthUseCase
	Reports     reports.ReportUseCase
	Booking     booking.BookingUseCase
	Maintenance maintenance.MaintenanceUseCase
}

type Dispatcher struct {
	con      *console.Console
	svc      Services
	log      zerolog.Logger
	state    State
	identity domain.Identity
	role     domain.Role
}

func NewDispatcher(con *console.Console, svc Services, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{con: con, svc: svc, log: log, state: StateLoggedOut}
}

func (d *Dispatcher) State() State { return d.state }

// Run loops until the operator exits or the input ends. It only returns an
// error when the console itself fails.
func (d *Dispatcher) Run(ctx context.Context) error {
	for d.state != StateExiting {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch d.state {
		case StateLoggedOut:
			err = d.mainMenu(ctx)
		case StateRoleMenu:
			err = d.roleMenu(ctx)
		}

		if errors.Is(err, console.ErrEndOfInput) {
			d.log.Info().Msg("input closed, exiting")
			d.state = StateExiting
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) mainMenu(ctx context.Context) error {
	d.con.Println("MAIN MENU")
	d.con.Println("---------")
	d.con.Println("1. Create user")
	d.con.Println("2. Log in")
	d.con.Println("9. < EXIT")

	choice, err := d.con.ReadChoice()
	if err != nil {
		return err
	}

	switch choice {
	case choiceCreateUser:
		return d.report("CreateUser", d.createUser(ctx))
	case choiceLogIn:
		return d.report("LogIn", d.logIn(ctx))
	case choiceExit:
		d.state = StateExiting
	default:
		d.con.Println(unrecognizedChoice)
	}
	return nil
}

func (d *Dispatcher) roleMenu(ctx context.Context) error {
	d.con.Println("MAIN MENU")
	d.con.Println("---------")
	for _, a := range Actions(d.role) {
		d.con.Printf("%d. %s\n", a.Number, a.Title)
	}
	d.con.Printf("%d. Log out\n", choiceLogOut)

	choice, err := d.con.ReadChoice()
	if err != nil {
		return err
	}

	if choice == choiceLogOut {
		d.log.Info().Str("username", d.identity.Username).Msg("logged out")
		d.identity = domain.Identity{}
		d.role = ""
		d.state = StateLoggedOut
		return nil
	}

	action, ok := lookup(d.role, choice)
	if !ok {
		d.con.Println(unrecognizedChoice)
		return nil
	}
	d.log.Debug().Int("action", action.Number).Msg("running action")
	return d.report(action.Title, action.run(d, ctx))
}

// report prints the outcome of a failed handler. Taxonomy errors show their
// message; anything else is logged and shown as a transient failure. Only
// end of input and cancellation are passed up.
func (d *Dispatcher) report(name string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, console.ErrEndOfInput, context.Canceled) {
		return err
	}
	if msg, ok := apperrors.UserMessage(err); ok {
		d.con.Println(msg)
		return nil
	}
	d.log.Error().Err(err).Str("action", name).Msg("action failed")
	d.con.Printf("Error in %s: %v\n", name, err)
	return nil
}

func (d *Dispatcher) createUser(ctx context.Context) error {
	username, err := d.con.Prompt("\tEnter username: ")
	if err != nil {
		return err
	}
	if err := d.svc.Auth.CheckUsername(ctx, username); err != nil {
		return err
	}

	password, err := d.con.Prompt("\tEnter password: ")
	if err != nil {
		return err
	}
	if err := validation.Required(password, auth.MsgEmptyPassword); err != nil {
		return err
	}
	role, err := d.con.Prompt("\tEnter role: ")
	if err != nil {
		return err
	}

	if err := d.svc.Auth.CreateAccount(ctx, username, password, role); err != nil {
		return err
	}
	d.con.Println("User successfully created!")
	return nil
}

func (d *Dispatcher) logIn(ctx context.Context) error {
	username, err := d.con.Prompt("\tEnter username: ")
	if err != nil {
		return err
	}
	password, err := d.con.Prompt("\tEnter password: ")
	if err != nil {
		return err
	}

	identity, err := d.svc.Auth.LogIn(ctx, username, password)
	if err != nil {
		return err
	}

	d.con.Println("Login successful!")
	d.con.Println(identity.Username)
	d.con.Println(identity.Role)

	role, ok := domain.ParseRole(identity.Role)
	if !ok {
		d.log.Warn().Str("username", identity.Username).Str("role", identity.Role).Msg("stored role is not recognized")
	}
	d.identity = identity
	d.role = role
	d.state = StateRoleMenu
	d.log.Info().Str("username", identity.Username).Str("role", string(role)).Msg("logged in")
	return nil
}
