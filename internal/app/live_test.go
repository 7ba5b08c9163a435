package app

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/eclipse/internal/db"
	"github.com/jwulff/eclipse/internal/loader"
)

// TestLiveTUIFlow drives the model over the real cached catalog.
// Skipped if no cache has been written yet.
func TestLiveTUIFlow(t *testing.T) {
	path := db.DefaultDBPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("no eclipse cache")
	}

	store, err := db.Open(path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer store.Close()

	l := &loader.Loader{Cache: store, TTL: 100 * 365 * 24 * time.Hour}
	res, err := l.Load(context.Background())
	if err != nil {
		t.Skipf("cache unusable: %v", err)
	}

	m := New(Options{Config: testConfig(), Load: l.Load})
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = applyUpdate(m, CatalogLoadedMsg{Result: res})
	if m.session() == nil {
		t.Fatal("expected a chart session")
	}
	fmt.Printf("Loaded %d records (cached %v)\n", m.catalog.Len(), res.FetchedAt.Format(time.RFC3339))
	fmt.Println("=== Initial View ===")
	fmt.Println(m.View())

	// Walk the window forward and hover the first eclipse in it.
	for i := 0; i < 5; i++ {
		m, _ = applyUpdate(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	m, _ = applyUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if r, ok := m.session().Hovered(); ok {
		fmt.Printf("Hovered: %d %s %s\n", r.ID, r.Category, r.Date.Format("2006-01-02"))
	}
	m, _ = applyUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})

	fmt.Println("=== After Select ===")
	fmt.Println(m.View())
	fmt.Printf("Window: %s\n", m.session().Window().Label())
}
