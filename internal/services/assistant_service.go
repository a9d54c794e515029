package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/advisor"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/shopspring/decimal"
)

const maxUpsellSuggestions = 3

// DishDescriptionRequest asks for generated menu copy.
type DishDescriptionRequest struct {
	Name string `json:"name" binding:"required"`
}

// DishImageRequest asks for a generated dish photo.
type DishImageRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AssistantQueryRequest is a staff question for the chat assistant.
type AssistantQueryRequest struct {
	Question string `json:"question" binding:"required"`
}

// ReportSummary pairs a report with its generated summary.
type ReportSummary struct {
	Report  *models.SalesReport `json:"report"`
	Summary string              `json:"summary"`
}

// --- AssistantService Interface ---
// Advisory failures never surface here; only bad input or unknown ids are errors.
type AssistantService interface {
	DescribeDish(ctx context.Context, name string) (string, error)
	IllustrateDish(ctx context.Context, name, description string) (string, error)
	SuggestUpsell(ctx context.Context, draftID string) ([]string, error)
	SummarizeReport(ctx context.Context, params models.ReportRequestParams) (*ReportSummary, error)
	AnswerQuery(ctx context.Context, question string) (string, error)
}

type assistantService struct {
	advisor       *advisor.Fallback
	menuRepo      repositories.MenuRepository
	tableRepo     repositories.TableRepository
	inventoryRepo repositories.InventoryRepository
	draftRepo     repositories.DraftRepository
	sales         SalesService
}

// NewAssistantService creates a new instance of AssistantService.
func NewAssistantService(
	fb *advisor.Fallback,
	mr repositories.MenuRepository,
	tr repositories.TableRepository,
	ir repositories.InventoryRepository,
	dr repositories.DraftRepository,
	sales SalesService,
) AssistantService {
	return &assistantService{advisor: fb, menuRepo: mr, tableRepo: tr, inventoryRepo: ir, draftRepo: dr, sales: sales}
}

func (s *assistantService) DescribeDish(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: dish name is required", ErrValidation)
	}
	return s.advisor.GenerateDescription(ctx, name), nil
}

// IllustrateDish returns an image reference, or "" when none could be generated.
func (s *assistantService) IllustrateDish(ctx context.Context, name, description string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: dish name is required", ErrValidation)
	}
	return s.advisor.GenerateImage(ctx, name, strings.TrimSpace(description)), nil
}

// SuggestUpsell proposes up to three menu items that are not already in the draft.
// Suggestions that do not name a menu item are discarded.
func (s *assistantService) SuggestUpsell(ctx context.Context, draftID string) ([]string, error) {
	draft, err := s.draftRepo.GetByID(draftID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %s", ErrDraftNotFound, draftID)
	}
	if len(draft.Items) == 0 {
		return []string{}, nil
	}

	inDraft := map[string]bool{}
	current := make([]advisor.OrderLine, 0, len(draft.Items))
	for _, item := range draft.Items {
		current = append(current, advisor.OrderLine{Name: item.Name, Quantity: item.Quantity})
		inDraft[strings.ToLower(item.Name)] = true
	}

	menu, err := s.menuRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	candidates := map[string]string{} // lower-cased name -> display name
	entries := []advisor.MenuEntry{}
	for _, m := range menu {
		key := strings.ToLower(m.Name)
		if inDraft[key] {
			continue
		}
		candidates[key] = m.Name
		entries = append(entries, advisor.MenuEntry{Name: m.Name, Category: m.Category})
	}
	if len(entries) == 0 {
		return []string{}, nil
	}

	suggestions := []string{}
	seen := map[string]bool{}
	for _, name := range s.advisor.SuggestUpsell(ctx, current, entries) {
		key := strings.ToLower(strings.TrimSpace(name))
		display, ok := candidates[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, display)
		if len(suggestions) == maxUpsellSuggestions {
			break
		}
	}
	return suggestions, nil
}

func (s *assistantService) SummarizeReport(ctx context.Context, params models.ReportRequestParams) (*ReportSummary, error) {
	report, err := s.sales.Report(params)
	if err != nil {
		return nil, err
	}

	digest := advisor.SalesDigest{
		TotalRevenue:           report.TotalRevenue,
		TotalOrders:            report.TotalOrders,
		RevenueByPaymentMethod: make(map[string]decimal.Decimal, len(report.RevenueByPaymentMethod)),
	}
	for m, v := range report.RevenueByPaymentMethod {
		digest.RevenueByPaymentMethod[string(m)] = v
	}
	for i, t := range report.TopSellingItems {
		if i == 3 {
			break
		}
		digest.TopSellingItems = append(digest.TopSellingItems, advisor.TopSeller{Name: t.Name, Quantity: t.Quantity})
	}

	return &ReportSummary{Report: report, Summary: s.advisor.SummarizeSales(ctx, digest)}, nil
}

func (s *assistantService) AnswerQuery(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrValidation)
	}

	ac := advisor.AssistantContext{}
	if menu, err := s.menuRepo.List(); err == nil {
		for _, m := range menu {
			ac.Menu = append(ac.Menu, fmt.Sprintf("%s (%s COP) - %s", m.Name, m.Price.StringFixed(0), m.Category))
		}
	}
	if tables, err := s.tableRepo.List(); err == nil {
		for _, t := range tables {
			ac.Tables = append(ac.Tables, fmt.Sprintf("Mesa '%s' (%d asientos) está %s", t.Name, t.Capacity, t.Status))
		}
	}
	if items, err := s.inventoryRepo.List(); err == nil {
		for _, it := range items {
			ac.Inventory = append(ac.Inventory, fmt.Sprintf("%s: %.2f %s", it.Name, it.Stock, it.Unit))
		}
	}
	if today, err := s.sales.Report(models.ReportRequestParams{Period: string(models.PeriodToday)}); err == nil {
		ac.RevenueToday = today.TotalRevenue
		ac.OrdersToday = today.TotalOrders
	}

	return s.advisor.AnswerQuery(ctx, question, ac), nil
}
