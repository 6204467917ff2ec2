package reports

import (
	"github.com/Domenick1991/airops/internal/repository"
	"github.com/Domenick1991/airops/internal/validation"
)

// Report is a read-only action: its inputs, fixed statement and the line
// printed when nothing matches.
type Report struct {
	Name         string
	Fields       []validation.Field
	Statement    string
	EmptyMessage string
}

var (
	flightNumber = validation.Field{Prompt: "Enter flight number: ", EmptyMessage: "Flight number cannot be empty, please try again and enter a valid flight.", Kind: validation.FieldID}
	flightDate   = validation.Field{Prompt: "Enter a date (YYYY-MM-DD): ", EmptyMessage: "Date cannot be empty, please try again and enter a date.", Kind: validation.FieldDate}
	startDate    = validation.Field{Prompt: "Enter a start date (YYYY-MM-DD): ", EmptyMessage: "Start date cannot be empty, please try again and enter a valid start range.", Kind: validation.FieldDate}
	endDate      = validation.Field{Prompt: "Enter an end date (YYYY-MM-DD): ", EmptyMessage: "End date cannot be empty, please try again and enter a valid end range.", Kind: validation.FieldDate}
	planeID      = validation.Field{Prompt: "Enter a Plane ID: ", EmptyMessage: "Plane ID cannot be empty, please try again and enter a plane.", Kind: validation.FieldID}
	customerFlt  = validation.Field{Prompt: "Enter a flight number: ", EmptyMessage: "Flight number cannot be empty, please try again and enter a valid flight number.", Kind: validation.FieldText}
)

var (
	WeeklySchedule = Report{
		Name:         "weekly_schedule",
		Fields:       []validation.Field{flightNumber},
		Statement:    repository.QueryWeeklySchedule,
		EmptyMessage: "No flights available.",
	}
	SeatAvailability = Report{
		Name:         "seat_availability",
		Fields:       []validation.Field{flightNumber, flightDate},
		Statement:    repository.QuerySeatAvailability,
		EmptyMessage: "No flight information available.",
	}
	FlightStatus = Report{
		Name:         "flight_status",
		Fields:       []validation.Field{flightNumber, flightDate},
		Statement:    repository.QueryFlightStatus,
		EmptyMessage: "No flight information available.",
	}
	FlightsOfDay = Report{
		Name:         "flights_of_day",
		Fields:       []validation.Field{flightDate},
		Statement:    repository.QueryFlightsOfDay,
		EmptyMessage: "No flights on this date.",
	}
	Passengers = Report{
		Name:         "passengers",
		Fields:       []validation.Field{flightNumber, flightDate},
		Statement:    repository.QueryPassengers,
		EmptyMessage: "No passenger information available.",
	}
	Traveler = Report{
		Name: "traveler",
		Fields: []validation.Field{{
			Prompt:       "Enter a Reservation Number: ",
			EmptyMessage: "Reservation Number cannot be empty, please try again and enter a reservation.",
			Kind:         validation.FieldID,
		}},
		Statement:    repository.QueryTraveler,
		EmptyMessage: "No traveler information available.",
	}
	PlaneInfo = Report{
		Name:         "plane_info",
		Fields:       []validation.Field{planeID},
		Statement:    repository.QueryPlaneInfo,
		EmptyMessage: "No plane information available.",
	}
	RepairsByTechnician = Report{
		Name: "repairs_by_technician",
		Fields: []validation.Field{{
			Prompt:       "Enter a Technician ID: ",
			EmptyMessage: "Technician ID cannot be empty, please try again and enter a technician.",
			Kind:         validation.FieldID,
		}},
		Statement:    repository.QueryRepairsByTechnician,
		EmptyMessage: "No repair information available.",
	}
	RepairsByPlaneRange = Report{
		Name:         "repairs_by_plane_range",
		Fields:       []validation.Field{planeID, startDate, endDate},
		Statement:    repository.QueryRepairsByPlaneRange,
		EmptyMessage: "No repair information available.",
	}
	FlightStatistics = Report{
		Name:         "flight_statistics",
		Fields:       []validation.Field{flightNumber, startDate, endDate},
		Statement:    repository.QueryFlightStatistics,
		EmptyMessage: "No flight statistics available.",
	}
	SearchFlights = Report{
		Name: "search_flights",
		Fields: []validation.Field{
			{Prompt: "Enter departure city: ", EmptyMessage: "Departure city cannot be empty, please try again and enter a valid departure city.", Kind: validation.FieldContains},
			{Prompt: "Enter destination: ", EmptyMessage: "Destination cannot be empty, please try again and enter a valid destination.", Kind: validation.FieldContains},
		},
		Statement:    repository.QuerySearchFlights,
		EmptyMessage: "No flights available.",
	}
	TicketCost = Report{
		Name:         "ticket_cost",
		Fields:       []validation.Field{customerFlt},
		Statement:    repository.QueryTicketCost,
		EmptyMessage: "No tickets available for this flight.",
	}
	AirplaneType = Report{
		Name:         "airplane_type",
		Fields:       []validation.Field{customerFlt},
		Statement:    repository.QueryAirplaneType,
		EmptyMessage: "Flight number does not exist or no plane associated with this flight.",
	}
	PlaneMaintenance = Report{
		Name: "plane_maintenance",
		Fields: []validation.Field{
			{Prompt: "Enter a Plane ID: ", EmptyMessage: "Plane ID cannot be empty, please try again and enter a valid plane ID.", Kind: validation.FieldText},
			startDate,
			endDate,
		},
		Statement:    repository.QueryPlaneMaintenance,
		EmptyMessage: "No maintenances were made for this date range/plane.",
	}
	PilotRequests = Report{
		Name: "pilot_requests",
		Fields: []validation.Field{{
			Prompt:       "Enter a Pilot ID: ",
			EmptyMessage: "Pilot ID cannot be empty, please try again and enter a valid pilot ID.",
			Kind:         validation.FieldText,
		}},
		Statement:    repository.QueryPilotRequests,
		EmptyMessage: "Pilot did not make any maintenance requests.",
	}
)
