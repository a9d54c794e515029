package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/advisor"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
)

// stubAdvisor returns canned answers and remembers what it was asked.
type stubAdvisor struct {
	upsell  []string
	err     error
	digest  advisor.SalesDigest
	context advisor.AssistantContext
	menu    []advisor.MenuEntry
}

func (a *stubAdvisor) GenerateDescription(_ context.Context, name string) (string, error) {
	return "Crujientes " + name, a.err
}

func (a *stubAdvisor) GenerateImage(context.Context, string, string) (string, error) {
	return "data:image/png;base64,AAAA", a.err
}

func (a *stubAdvisor) SuggestUpsell(_ context.Context, _ []advisor.OrderLine, menu []advisor.MenuEntry) ([]string, error) {
	a.menu = menu
	return a.upsell, a.err
}

func (a *stubAdvisor) SummarizeSales(_ context.Context, d advisor.SalesDigest) (string, error) {
	a.digest = d
	return "Buen día", a.err
}

func (a *stubAdvisor) AnswerQuery(_ context.Context, _ string, ac advisor.AssistantContext) (string, error) {
	a.context = ac
	return "Quedan 2 mesas libres", a.err
}

func newAssistant(env *testEnv, a advisor.Advisor) AssistantService {
	return NewAssistantService(advisor.NewFallback(a, 0), env.menuRepo, env.tableRepo, env.inventoryRepo, env.draftRepo, env.sales)
}

func TestSuggestUpsell(t *testing.T) {
	env := newTestEnv(t)
	wings := env.addMenuItem(t, MenuItemRequest{Name: "Alitas", Price: price("18500")})
	env.addMenuItem(t, MenuItemRequest{Name: "Soda", Price: price("4000")})
	env.addMenuItem(t, MenuItemRequest{Name: "Papas", Price: price("7000")})
	env.addMenuItem(t, MenuItemRequest{Name: "Limonada", Price: price("5000")})
	env.addMenuItem(t, MenuItemRequest{Name: "Malteada", Price: price("9000")})

	draft, err := env.orders.CreateDraft(string(models.OrderTypeToGo))
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}

	stub := &stubAdvisor{upsell: []string{"alitas", "Pizza", "soda", "Soda", " Papas ", "Limonada", "Malteada"}}
	svc := newAssistant(env, stub)

	got, err := svc.SuggestUpsell(context.Background(), draft.ID)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty draft SuggestUpsell() = %v, %v; want no suggestions", got, err)
	}

	if _, err := env.orders.AddItem(draft.ID, AddItemRequest{MenuItemID: wings.ID}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	got, err = svc.SuggestUpsell(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("SuggestUpsell() error = %v", err)
	}
	want := []string{"Soda", "Papas", "Limonada"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("suggestions = %v, want %v", got, want)
	}
	for _, entry := range stub.menu {
		if entry.Name == "Alitas" {
			t.Error("items already in the draft were offered to the advisor")
		}
	}

	if _, err := svc.SuggestUpsell(context.Background(), "missing"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("SuggestUpsell(missing) error = %v, want ErrDraftNotFound", err)
	}
}

func TestAssistant_FallsBackWhenAdvisorFails(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssistant(env, &stubAdvisor{err: errors.New("quota exceeded")})
	ctx := context.Background()

	desc, err := svc.DescribeDish(ctx, "Alitas")
	if err != nil || desc != advisor.DescriptionFallback("Alitas") {
		t.Errorf("DescribeDish() = %q, %v", desc, err)
	}
	img, err := svc.IllustrateDish(ctx, "Alitas", "")
	if err != nil || img != "" {
		t.Errorf("IllustrateDish() = %q, %v", img, err)
	}
	answer, err := svc.AnswerQuery(ctx, "¿Cuántas mesas hay?")
	if err != nil || answer != advisor.AssistantFallback {
		t.Errorf("AnswerQuery() = %q, %v", answer, err)
	}
	summary, err := svc.SummarizeReport(ctx, models.ReportRequestParams{})
	if err != nil || summary.Summary != advisor.SummaryFallback || summary.Report == nil {
		t.Errorf("SummarizeReport() = %+v, %v", summary, err)
	}
}

func TestAssistant_RejectsBlankInput(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssistant(env, advisor.Disabled{})
	ctx := context.Background()

	if _, err := svc.DescribeDish(ctx, "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("DescribeDish() error = %v, want ErrValidation", err)
	}
	if _, err := svc.IllustrateDish(ctx, "", "desc"); !errors.Is(err, ErrValidation) {
		t.Errorf("IllustrateDish() error = %v, want ErrValidation", err)
	}
	if _, err := svc.AnswerQuery(ctx, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("AnswerQuery() error = %v, want ErrValidation", err)
	}
	if _, err := svc.SummarizeReport(ctx, models.ReportRequestParams{Period: "decade"}); !errors.Is(err, ErrValidation) {
		t.Errorf("SummarizeReport() error = %v, want ErrValidation", err)
	}
}

func TestAssistant_PassesRestaurantState(t *testing.T) {
	env := newTestEnv(t)
	env.addInventory(t, "Chicken", 1000, models.UnitGram, 0)
	env.addMenuItem(t, MenuItemRequest{Name: "Alitas", Price: price("18500")})
	env.addTable(t, "T1")

	stub := &stubAdvisor{}
	svc := newAssistant(env, stub)
	ctx := context.Background()

	answer, err := svc.AnswerQuery(ctx, "¿Qué hay en inventario?")
	if err != nil || answer != "Quedan 2 mesas libres" {
		t.Fatalf("AnswerQuery() = %q, %v", answer, err)
	}
	if len(stub.context.Menu) != 1 || len(stub.context.Tables) != 1 || len(stub.context.Inventory) != 1 {
		t.Errorf("context = %+v", stub.context)
	}

	summary, err := svc.SummarizeReport(ctx, models.ReportRequestParams{Period: "today"})
	if err != nil || summary.Summary != "Buen día" {
		t.Fatalf("SummarizeReport() = %+v, %v", summary, err)
	}
	if len(stub.digest.RevenueByPaymentMethod) != len(models.PaymentMethods) {
		t.Errorf("digest payment methods = %v", stub.digest.RevenueByPaymentMethod)
	}
}
