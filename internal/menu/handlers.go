package menu

import (
	"context"

	"github.com/Domenick1991/airops/internal/service/booking"
	"github.com/Domenick1991/airops/internal/service/maintenance"
	"github.com/Domenick1991/airops/internal/service/reports"
	"github.com/Domenick1991/airops/internal/validation"
)

// ask prompts for one field and validates it straight away, so a bad value
// aborts the form before the next prompt.
func (d *Dispatcher) ask(f validation.Field) (raw, arg string, err error) {
	raw, err = d.con.Prompt(f.Prompt)
	if err != nil {
		return "", "", err
	}
	arg, err = f.Arg(raw)
	if err != nil {
		return "", "", err
	}
	return raw, arg, nil
}

func (d *Dispatcher) runReport(ctx context.Context, r reports.Report) error {
	inputs := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		raw, _, err := d.ask(f)
		if err != nil {
			return err
		}
		inputs = append(inputs, raw)
	}

	res, err := d.svc.Reports.Run(ctx, r, inputs)
	if err != nil {
		return err
	}
	if d.con.PrintTable(res) == 0 {
		d.con.Println(r.EmptyMessage)
	}
	return nil
}

func (d *Dispatcher) makeReservation(ctx context.Context) error {
	customer := make([]string, 0, len(booking.CustomerFields))
	for _, f := range booking.CustomerFields {
		raw, _, err := d.ask(f)
		if err != nil {
			return err
		}
		customer = append(customer, raw)
	}

	d.con.Println("Which flight would you like to make a reservation for?")
	flightInstance, _, err := d.ask(booking.FlightInstanceField)
	if err != nil {
		return err
	}

	input, err := booking.ParseInput(customer, flightInstance)
	if err != nil {
		return err
	}
	conf, err := d.svc.Booking.Book(ctx, input)
	if err != nil {
		return err
	}
	d.con.Println(conf.Message())
	return nil
}

func (d *Dispatcher) logRepair(ctx context.Context) error {
	var in maintenance.RepairInput
	var err error

	if _, in.PlaneID, err = d.ask(maintenance.RepairPlaneField); err != nil {
		return err
	}
	if err := d.svc.Maintenance.CheckPlane(ctx, in.PlaneID); err != nil {
		return err
	}
	if _, in.RepairCode, err = d.ask(maintenance.RepairCodeField); err != nil {
		return err
	}
	if _, in.RepairDate, err = d.ask(maintenance.RepairDateField); err != nil {
		return err
	}
	if _, in.TechnicianID, err = d.ask(maintenance.TechnicianField); err != nil {
		return err
	}
	if err := d.svc.Maintenance.CheckTechnician(ctx, in.TechnicianID); err != nil {
		return err
	}

	repair, err := d.svc.Maintenance.LogRepair(ctx, in)
	if err != nil {
		return err
	}
	d.con.Println(maintenance.RepairLoggedMessage(repair))
	return nil
}

func (d *Dispatcher) makeMaintenanceRequest(ctx context.Context) error {
	var in maintenance.RequestInput
	var err error

	if _, in.PlaneID, err = d.ask(maintenance.RequestPlaneField); err != nil {
		return err
	}
	if err := d.svc.Maintenance.CheckPlane(ctx, in.PlaneID); err != nil {
		return err
	}
	if _, in.RepairCode, err = d.ask(maintenance.RequestCodeField); err != nil {
		return err
	}
	if _, in.RequestDate, err = d.ask(maintenance.RequestDateField); err != nil {
		return err
	}
	if _, in.PilotID, err = d.ask(maintenance.PilotField); err != nil {
		return err
	}
	if err := d.svc.Maintenance.CheckPilot(ctx, in.PilotID); err != nil {
		return err
	}

	req, err := d.svc.Maintenance.LogMaintenanceRequest(ctx, in)
	if err != nil {
		return err
	}
	d.con.Println(maintenance.RequestLoggedMessage(req))
	return nil
}
