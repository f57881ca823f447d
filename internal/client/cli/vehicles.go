package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

const vehiclesPath = "/vehicles"

func (a *App) Vehicles(ctx context.Context, args []string) error {
	return a.open(ctx, vehiclesPath, args)
}

// parseVehicleFilter understands key=value pairs (q, type, engine, size)
// and the bare word "available". Other bare words form the search query.
func parseVehicleFilter(args []string) (services.VehicleFilter, error) {
	var f services.VehicleFilter
	var query []string

	for _, arg := range args {
		key, val, hasVal := strings.Cut(arg, "=")
		if !hasVal {
			if strings.EqualFold(arg, "available") {
				f.AvailableOnly = true
			} else {
				query = append(query, arg)
			}
			continue
		}
		switch strings.ToLower(key) {
		case "q", "query":
			query = append(query, val)
		case "type":
			f.Type = val
		case "engine":
			f.Engine = val
		case "size":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return f, fmt.Errorf("invalid size %q", val)
			}
			f.Size = n
		default:
			return f, fmt.Errorf("unknown filter %q", key)
		}
	}

	f.Query = strings.Join(query, " ")
	return f, nil
}

func (a *App) listVehicles(ctx context.Context, args []string) error {
	f, err := parseVehicleFilter(args)
	if err != nil {
		a.notify.Error(err.Error())
		return err
	}

	vs, err := a.vehicles.List(ctx, f)
	if err != nil {
		return a.failed(ctx, "list vehicles", err)
	}
	if len(vs) == 0 {
		a.notify.Info("No vehicles found.")
		return nil
	}

	fmt.Fprintln(a.out, vehicleTable(vs, false))
	return nil
}

func vehicleTable(vs []models.Vehicle, numbered bool) string {
	headers := []string{"ID", "Name", "Year", "Type", "Engine", "Seats", "Available"}
	if numbered {
		headers = append([]string{"#"}, headers...)
	}

	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for i, v := range vs {
		avail := "yes"
		if !v.IsAvailable() {
			avail = "no"
		}
		row := []string{v.ID, v.Name, v.Year, v.Type, v.Engine, strconv.Itoa(v.Size), avail}
		if numbered {
			row = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		t.Row(row...)
	}
	return t.String()
}

func (a *App) AddVehicle(ctx context.Context) error {
	if _, ok, err := a.enter(ctx, vehiclesPath); !ok {
		return err
	}

	fmt.Fprintln(a.out, "== New vehicle ==")
	name, err := GetSimpleText(a.reader, "Name (empty to cancel)", a.out)
	if err != nil || name == "" {
		return err
	}

	req := models.CreateVehicleRequest{Name: name}
	if req.Year, err = GetSimpleText(a.reader, "Year", a.out); err != nil {
		return err
	}
	if req.Type, err = GetSimpleText(a.reader, "Type", a.out); err != nil {
		return err
	}
	if req.Engine, err = GetSimpleText(a.reader, "Engine", a.out); err != nil {
		return err
	}
	size, err := GetSimpleText(a.reader, "Seats", a.out)
	if err != nil {
		return err
	}
	if req.Size, err = strconv.Atoi(size); err != nil {
		a.notify.Error(fmt.Sprintf("Invalid number of seats %q.", size))
		return err
	}

	v, err := a.vehicles.Create(ctx, req)
	if err != nil {
		return a.failed(ctx, "create vehicle", err)
	}
	a.notify.Success(fmt.Sprintf("Vehicle %s created (id %s).", v.Name, v.ID))
	return nil
}

// EditVehicle prompts for every field with the current value as default and
// sends only what changed.
func (a *App) EditVehicle(ctx context.Context, id string) error {
	if _, ok, err := a.enter(ctx, vehiclesPath); !ok {
		return err
	}

	cur, err := a.findVehicle(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "== Edit %s ==\n", cur.Name)
	var req models.UpdateVehicleRequest
	changed := false

	for _, field := range []struct {
		prompt string
		cur    string
		dst    **string
	}{
		{"Name", cur.Name, &req.Name},
		{"Year", cur.Year, &req.Year},
		{"Type", cur.Type, &req.Type},
		{"Engine", cur.Engine, &req.Engine},
	} {
		s, err := GetTextWithDefault(a.reader, field.prompt, field.cur, a.out)
		if err != nil {
			return err
		}
		if s != field.cur {
			v := s
			*field.dst = &v
			changed = true
		}
	}

	s, err := GetTextWithDefault(a.reader, "Seats", strconv.Itoa(cur.Size), a.out)
	if err != nil {
		return err
	}
	size, err := strconv.Atoi(s)
	if err != nil {
		a.notify.Error(fmt.Sprintf("Invalid number of seats %q.", s))
		return err
	}
	if size != cur.Size {
		req.Size = &size
		changed = true
	}

	if !changed {
		a.notify.Info("Nothing to update.")
		return nil
	}

	v, err := a.vehicles.Update(ctx, id, req)
	if err != nil {
		return a.failed(ctx, "update vehicle", err)
	}
	a.notify.Success(fmt.Sprintf("Vehicle %s updated.", v.Name))
	return nil
}

func (a *App) DeleteVehicle(ctx context.Context, id string) error {
	if _, ok, err := a.enter(ctx, vehiclesPath); !ok {
		return err
	}

	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete vehicle %s?", id), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.vehicles.Delete(ctx, id); err != nil {
		return a.failed(ctx, "delete vehicle", err)
	}
	a.notify.Success("Vehicle deleted.")
	return nil
}

func (a *App) findVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	vs, err := a.vehicles.List(ctx, services.VehicleFilter{})
	if err != nil {
		return nil, a.failed(ctx, "list vehicles", err)
	}
	for i := range vs {
		if vs[i].ID == id {
			return &vs[i], nil
		}
	}
	err = fmt.Errorf("vehicle %s not found", id)
	a.notify.Error(fmt.Sprintf("Vehicle %s not found.", id))
	return nil, err
}
