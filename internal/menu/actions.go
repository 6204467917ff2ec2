package menu

import (
	"context"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/service/reports"
)

// Action is one numbered entry of a role menu. A number always maps to the
// same handler, whatever menu displays it.
type Action struct {
	Number int
	Title  string
	Role   domain.Role
	run    func(d *Dispatcher, ctx context.Context) error
}

const (
	choiceCreateUser = 1
	choiceLogIn      = 2
	choiceExit       = 9
	choiceLogOut     = 20
)

func reportAction(n int, title string, role domain.Role, r reports.Report) Action {
	return Action{Number: n, Title: title, Role: role, run: func(d *Dispatcher, ctx context.Context) error {
		return d.runReport(ctx, r)
	}}
}

// actionTable is the canonical numbering shared by display and dispatch.
// Handlers must not refer back to it.
var actionTable = []Action{
	reportAction(1, "View Flight's Week Schedule", domain.RoleManager, reports.WeeklySchedule),
	reportAction(2, "View Flight Seats", domain.RoleManager, reports.SeatAvailability),
	reportAction(3, "View Flight Status", domain.RoleManager, reports.FlightStatus),
	reportAction(4, "View Flights of the Day", domain.RoleManager, reports.FlightsOfDay),
	reportAction(5, "View Passengers of a Flight", domain.RoleManager, reports.Passengers),
	reportAction(6, "View Traveler Information", domain.RoleManager, reports.Traveler),
	reportAction(7, "View Plane Information", domain.RoleManager, reports.PlaneInfo),
	reportAction(8, "View Repairs Made by a Technician", domain.RoleManager, reports.RepairsByTechnician),
	reportAction(9, "View Repairs of a Plane by Date Range", domain.RoleManager, reports.RepairsByPlaneRange),
	reportAction(10, "View Flight Statistics by Date Range", domain.RoleManager, reports.FlightStatistics),
	reportAction(11, "Search Flights", domain.RoleCustomer, reports.SearchFlights),
	reportAction(12, "Find Ticket Cost", domain.RoleCustomer, reports.TicketCost),
	reportAction(13, "Find Airplane Type", domain.RoleCustomer, reports.AirplaneType),
	{Number: 14, Title: "Make a Reservation for a Flight", Role: domain.RoleCustomer, run: (*Dispatcher).makeReservation},
	reportAction(15, "Check a Plane's Maintenance Requests", domain.RoleTechnician, reports.PlaneMaintenance),
	reportAction(16, "Check a Pilot's Maintenance Requests", domain.RoleTechnician, reports.PilotRequests),
	{Number: 17, Title: "Log a Repair for a Plane", Role: domain.RoleTechnician, run: (*Dispatcher).logRepair},
	{Number: 18, Title: "Make a Maintenance Request", Role: domain.RolePilot, run: (*Dispatcher).makeMaintenanceRequest},
}

// Actions returns the entries available to role, in menu order. An unknown
// role has none.
func Actions(role domain.Role) []Action {
	var out []Action
	for _, a := range actionTable {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out
}

func lookup(role domain.Role, n int) (Action, bool) {
	for _, a := range actionTable {
		if a.Number == n && a.Role == role {
			return a, true
		}
	}
	return Action{}, false
}
