package catalog

import (
	"context"

	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// HygieneSchema drives the milking hygiene checklist screen.
func HygieneSchema() controller.Schema[models.HygieneCheck] {
	return controller.Schema[models.HygieneCheck]{
		Name:     "hygiene",
		Endpoint: HygieneEndpoint,
		Date:     func(r models.HygieneCheck) string { return r.Date },
		Search:   func(r models.HygieneCheck) []string { return []string{r.Procedure, r.DetergentUse, r.Remarks} },
		Enums: map[string]func(models.HygieneCheck) string{
			"session": func(r models.HygieneCheck) string { return r.Session },
		},
	}
}

// HygieneForm declares the hygiene modal.
func HygieneForm() controller.FormSpec[models.HygieneCheck] {
	return controller.FormSpec[models.HygieneCheck]{
		Endpoint: HygieneEndpoint,
		Fields: []controller.Field{
			{Name: "date", Label: "Date", Required: true},
			{Name: "session", Label: "Session", Required: true, Enum: []string{"morning", "evening"}},
			{Name: "procedure", Label: "Procedure", Required: true},
			{Name: "detergent_use", Label: "Detergent"},
			{Name: "compliant", Label: "Compliant", Enum: []string{"true", "false"}},
			{Name: "remarks", Label: "Remarks"},
		},
		Defaults: func() map[string]string {
			return map[string]string{"date": today(), "session": "morning", "compliant": "true"}
		},
		FromRecord: func(r models.HygieneCheck) map[string]string {
			compliant := "false"
			if r.Compliant {
				compliant = "true"
			}
			return map[string]string{
				"date":          r.Date,
				"session":       r.Session,
				"procedure":     r.Procedure,
				"detergent_use": r.DetergentUse,
				"compliant":     compliant,
				"remarks":       r.Remarks,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"date":          draft["date"],
				"session":       draft["session"],
				"procedure":     draft["procedure"],
				"detergent_use": draft["detergent_use"],
				"compliant":     draft["compliant"] == "true",
				"remarks":       draft["remarks"],
				"supervisor_id": actorID,
			}
		},
	}
}

// ShiftSchema drives the staff shift schedule screen.
func ShiftSchema() controller.Schema[models.ShiftAssignment] {
	return controller.Schema[models.ShiftAssignment]{
		Name:     "shift",
		Endpoint: ShiftEndpoint,
		Date:     func(r models.ShiftAssignment) string { return r.Date },
		Search:   func(r models.ShiftAssignment) []string { return []string{r.EmployeeID, r.EmployeeName, r.Task} },
		Enums: map[string]func(models.ShiftAssignment) string{
			"shift": func(r models.ShiftAssignment) string { return r.Shift },
		},
	}
}

// ShiftForm declares the shift modal.
func ShiftForm() controller.FormSpec[models.ShiftAssignment] {
	return controller.FormSpec[models.ShiftAssignment]{
		Endpoint: ShiftEndpoint,
		Fields: []controller.Field{
			{Name: "employee_id", Label: "Employee id", Required: true},
			{Name: "employee_name", Label: "Employee name", Required: true},
			{Name: "date", Label: "Date", Required: true},
			{Name: "shift", Label: "Shift", Required: true, Enum: []string{
				models.ShiftMorning, models.ShiftEvening, models.ShiftNight,
			}},
			{Name: "task", Label: "Task"},
		},
		Defaults: func() map[string]string {
			return map[string]string{"date": today(), "shift": models.ShiftMorning}
		},
		FromRecord: func(r models.ShiftAssignment) map[string]string {
			return map[string]string{
				"employee_id":   r.EmployeeID,
				"employee_name": r.EmployeeName,
				"date":          r.Date,
				"shift":         r.Shift,
				"task":          r.Task,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"employee_id":   draft["employee_id"],
				"employee_name": draft["employee_name"],
				"date":          draft["date"],
				"shift":         draft["shift"],
				"task":          draft["task"],
				"supervisor_id": actorID,
			}
		},
	}
}

// NotificationSchema drives the read-only notification feed.
func NotificationSchema() controller.Schema[models.Notification] {
	return controller.Schema[models.Notification]{
		Name:     "notification",
		Endpoint: NotificationEndpoint,
		Date:     func(r models.Notification) string { return r.Date },
		Search:   func(r models.Notification) []string { return []string{r.Message} },
		Enums: map[string]func(models.Notification) string{
			"category": func(r models.Notification) string { return r.Category },
		},
	}
}

// UserSchema drives the admin user-management screen.
func UserSchema() controller.Schema[models.UserProfile] {
	return controller.Schema[models.UserProfile]{
		Name:     "user",
		Endpoint: UserEndpoint,
		Search:   func(r models.UserProfile) []string { return []string{r.Username, r.FullName, r.Email} },
		Enums: map[string]func(models.UserProfile) string{
			"role": func(r models.UserProfile) string { return r.Role },
		},
	}
}

// UserForm declares the account modal; passwords are set through a separate
// credential flow, never through this form.
func UserForm() controller.FormSpec[models.UserProfile] {
	return controller.FormSpec[models.UserProfile]{
		Endpoint: UserEndpoint,
		Fields: []controller.Field{
			{Name: "username", Label: "Username", Required: true},
			{Name: "full_name", Label: "Full name", Required: true},
			{Name: "email", Label: "Email"},
			{Name: "phone", Label: "Phone"},
			{Name: "role", Label: "Role", Required: true, Enum: []string{"admin", "supervisor"}},
			{Name: "active", Label: "Active", Enum: []string{"true", "false"}},
		},
		Defaults: func() map[string]string {
			return map[string]string{"role": "supervisor", "active": "true"}
		},
		FromRecord: func(r models.UserProfile) map[string]string {
			active := "false"
			if r.Active {
				active = "true"
			}
			return map[string]string{
				"username":  r.Username,
				"full_name": r.FullName,
				"email":     r.Email,
				"phone":     r.Phone,
				"role":      r.Role,
				"active":    active,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"username":      draft["username"],
				"full_name":     draft["full_name"],
				"email":         draft["email"],
				"phone":         draft["phone"],
				"role":          draft["role"],
				"active":        draft["active"] == "true",
				"supervisor_id": actorID,
			}
		},
	}
}

// AnimalLookup feeds the animal id autocomplete from the reference herd
// list.
func AnimalLookup(client *dairy.Client) *controller.Lookup {
	return controller.NewLookup(func(ctx context.Context) ([]string, error) {
		animals, err := dairy.List[models.Animal](ctx, client, AnimalEndpoint, "")
		if err != nil {
			return nil, err
		}
		tags := make([]string, 0, len(animals))
		for _, a := range animals {
			tags = append(tags, a.Tag)
		}
		return tags, nil
	})
}

// CalfLookup feeds the calf id autocomplete from the active breeding
// records only.
func CalfLookup(client *dairy.Client) *controller.Lookup {
	return controller.NewLookup(func(ctx context.Context) ([]string, error) {
		records, err := dairy.List[models.BreedingRecord](ctx, client, BreedingEndpoint, "is_active=true")
		if err != nil {
			return nil, err
		}
		tags := make([]string, 0, len(records))
		for _, r := range records {
			if r.IsActive {
				tags = append(tags, r.CalfTag)
			}
		}
		return tags, nil
	})
}
