package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/session"
	"github.com/mamadbah2/dairydesk/internal/tui"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

func supervisorClient() *dairy.Client {
	return dairy.New("http://localhost:0", session.Session{
		UserID: 2, Username: "fatou", Role: session.RoleSupervisor, Token: "t",
	})
}

func adminClient() *dairy.Client {
	return dairy.New("http://localhost:0", session.Session{
		UserID: 1, Username: "ami", Role: session.RoleAdmin, Token: "t",
	})
}

func TestBuildPagesPerRole(t *testing.T) {
	supPages := tui.BuildPages(supervisorClient(), t.TempDir())
	require.Len(t, supPages, 8)

	adminPages := tui.BuildPages(adminClient(), t.TempDir())
	require.Len(t, adminPages, 9, "admins get the user-management screen")
	assert.Equal(t, "users", adminPages[8].Title())
}

func TestBuildPagesTitles(t *testing.T) {
	pages := tui.BuildPages(supervisorClient(), t.TempDir())

	var titles []string
	for _, p := range pages {
		titles = append(titles, p.Title())
	}
	assert.Equal(t, []string{
		"milk", "vaccines", "calf feed", "weaning",
		"finance", "hygiene", "shifts", "alerts",
	}, titles)
}

func TestAppViewRendersTabStrip(t *testing.T) {
	client := supervisorClient()
	app := tui.NewApp(client.Session(), tui.BuildPages(client, t.TempDir()))

	out := app.View()

	assert.Contains(t, out, "fatou")
	assert.Contains(t, out, "supervisor")
	assert.Contains(t, out, "milk")
	assert.Contains(t, out, "vaccines")
}
