package repository

// Fixed statement templates of the read-only reports. Every user value is a
// bind parameter.
const (
	QueryWeeklySchedule = `
		SELECT DayOfWeek, DepartureTime, ArrivalTime
		FROM Schedule
		WHERE FlightNumber = $1
		ORDER BY CASE DayOfWeek
			WHEN 'Monday' THEN 1
			WHEN 'Tuesday' THEN 2
			WHEN 'Wednesday' THEN 3
			WHEN 'Thursday' THEN 4
			WHEN 'Friday' THEN 5
			WHEN 'Saturday' THEN 6
			WHEN 'Sunday' THEN 7
		END`

	QuerySeatAvailability = `
		SELECT SeatsTotal - SeatsSold AS seats_available, SeatsSold AS seats_sold
		FROM FlightInstance
		WHERE FlightNumber = $1 AND FlightDate = $2::date`

	QueryFlightStatus = `
		SELECT FlightNumber, FlightDate,
			CASE WHEN DepartedOnTime THEN 'Yes' WHEN NOT DepartedOnTime THEN 'No' ELSE 'Unknown' END AS DepartedOnTime,
			CASE WHEN ArrivedOnTime THEN 'Yes' WHEN NOT ArrivedOnTime THEN 'No' ELSE 'Unknown' END AS ArrivedOnTime
		FROM FlightInstance
		WHERE FlightNumber = $1 AND FlightDate = $2::date`

	// The weekday name of the date selects the matching Schedule row.
	QueryFlightsOfDay = `
		SELECT fi.FlightNumber, f.DepartureCity, f.ArrivalCity, s.DepartureTime, s.ArrivalTime
		FROM FlightInstance fi
		JOIN Schedule s ON fi.FlightNumber = s.FlightNumber
		JOIN Flight f ON fi.FlightNumber = f.FlightNumber
		WHERE fi.FlightDate = $1::date
			AND TRIM(TO_CHAR(fi.FlightDate, 'Day')) = s.DayOfWeek
		ORDER BY s.DepartureTime, fi.FlightNumber`

	QueryPassengers = `
		SELECT c.FirstName, c.LastName, r.Status
		FROM Customer c
		JOIN Reservation r ON c.CustomerID = r.CustomerID
		JOIN FlightInstance fi ON fi.FlightInstanceID = r.FlightInstanceID
		WHERE fi.FlightNumber = $1 AND fi.FlightDate = $2::date
		ORDER BY r.Status, c.LastName, c.FirstName`

	QueryTraveler = `
		SELECT c.FirstName, c.LastName, c.Gender, c.DOB, c.Address, c.Phone, c.Zip
		FROM Customer c
		JOIN Reservation r ON c.CustomerID = r.CustomerID
		WHERE r.ReservationID = $1`

	QueryPlaneInfo = `
		SELECT Make, Model, EXTRACT(YEAR FROM CURRENT_DATE) - Year AS age_in_years
		FROM Plane
		WHERE PlaneID = $1`

	QueryRepairsByTechnician = `
		SELECT PlaneID, RepairCode, RepairDate
		FROM Repair
		WHERE TechnicianID = $1
		ORDER BY RepairDate`

	QueryRepairsByPlaneRange = `
		SELECT RepairDate, RepairCode, TechnicianID
		FROM Repair
		WHERE PlaneID = $1 AND RepairDate BETWEEN $2::date AND $3::date
		ORDER BY RepairDate`

	QueryFlightStatistics = `
		SELECT COUNT(*) AS num_flight_instances,
			SUM(SeatsSold) AS sold_tickets,
			SUM(SeatsTotal - SeatsSold) AS unsold_tickets
		FROM FlightInstance
		WHERE FlightNumber = $1 AND FlightDate BETWEEN $2::date AND $3::date`

	// $1 and $2 are ILIKE patterns for the departure and arrival city.
	QuerySearchFlights = `
		SELECT f.FlightNumber AS flight_number,
			s.DepartureTime AS departure_time,
			s.ArrivalTime AS arrival_time,
			fi.NumOfStops AS num_stops,
			ROUND(100.0 * SUM(CASE WHEN fi.DepartedOnTime AND fi.ArrivedOnTime THEN 1 ELSE 0 END)
				/ COUNT(fi.FlightInstanceID), 2) AS on_time_percent
		FROM Flight f
		JOIN Schedule s ON f.FlightNumber = s.FlightNumber
		JOIN FlightInstance fi ON f.FlightNumber = fi.FlightNumber
		WHERE f.DepartureCity ILIKE $1 AND f.ArrivalCity ILIKE $2
		GROUP BY f.FlightNumber, s.DepartureTime, s.ArrivalTime, fi.NumOfStops
		ORDER BY f.FlightNumber, s.DepartureTime, fi.NumOfStops`

	QueryTicketCost = `
		SELECT FlightDate, TicketCost AS ticket_cost
		FROM FlightInstance
		WHERE FlightNumber = $1
		ORDER BY FlightDate`

	QueryAirplaneType = `
		SELECT p.Make AS plane_make, p.Model AS plane_model
		FROM Flight f
		JOIN Plane p ON f.PlaneID = p.PlaneID
		WHERE f.FlightNumber = $1`

	QueryPlaneMaintenance = `
		SELECT RepairCode AS repair_code, RequestDate AS request_date
		FROM MaintenanceRequest
		WHERE PlaneID = $1 AND RequestDate BETWEEN $2::date AND $3::date
		ORDER BY RequestDate`

	QueryPilotRequests = `
		SELECT p.Name AS pilot_name, mr.RequestID, mr.PlaneID, mr.RepairCode, mr.RequestDate
		FROM MaintenanceRequest mr
		JOIN Pilot p ON mr.PilotID = p.PilotID
		WHERE mr.PilotID = $1
		ORDER BY mr.RequestDate`
)
