package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
	"github.com/shopspring/decimal"
)

const defaultCategory = "General"

// --- DTOs ---

// MenuItemRequest is used to create or replace a menu item.
type MenuItemRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Category    string              `json:"category"`
	HasWings    bool                `json:"has_wings"`
	HasFries    bool                `json:"has_fries"`
	SubmenuKey  *string             `json:"submenu_key"`
	MaxChoices  int                 `json:"max_choices"`
	ImageURL    *string             `json:"image_url"`
	Recipe      []models.Ingredient `json:"recipe"`
}

// --- MenuService Interface ---
type MenuService interface {
	CreateMenuItem(req MenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(itemID string, req MenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(itemID string) error
	GetMenuItem(itemID string) (*models.MenuItem, error)
	ListMenuItems(category string) ([]models.MenuItem, error)
	ListCategories() ([]string, error)
	GetCustomizationCatalog() models.CustomizationCatalog
	UpdateCustomizationCatalog(catalog models.CustomizationCatalog) (models.CustomizationCatalog, error)
}

type menuService struct {
	menuRepo      repositories.MenuRepository
	inventoryRepo repositories.InventoryRepository
	publisher     notifications.Publisher
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(mr repositories.MenuRepository, ir repositories.InventoryRepository, publisher notifications.Publisher) MenuService {
	return &menuService{menuRepo: mr, inventoryRepo: ir, publisher: publisher}
}

func (s *menuService) validate(req MenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.MaxChoices < 0 {
		return nil, fmt.Errorf("%w: max_choices cannot be negative", ErrValidation)
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = defaultCategory
	}

	var submenu *string
	if req.SubmenuKey != nil && strings.TrimSpace(*req.SubmenuKey) != "" {
		key := strings.TrimSpace(*req.SubmenuKey)
		if _, ok := s.menuRepo.GetCatalog().SubmenuChoices[key]; !ok {
			return nil, fmt.Errorf("%w: unknown submenu '%s'", ErrValidation, key)
		}
		submenu = &key
	}

	recipe, err := s.validateRecipe(req.Recipe)
	if err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    category,
		HasWings:    req.HasWings,
		HasFries:    req.HasFries,
		SubmenuKey:  submenu,
		MaxChoices:  req.MaxChoices,
		ImageURL:    utils.NewNullString(derefString(req.ImageURL)),
		Recipe:      recipe,
	}
	return item, nil
}

// validateRecipe checks that every ingredient exists, is used once and has a positive quantity.
func (s *menuService) validateRecipe(recipe []models.Ingredient) ([]models.Ingredient, error) {
	if len(recipe) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(recipe))
	out := make([]models.Ingredient, 0, len(recipe))
	for i, ing := range recipe {
		if ing.InventoryItemID == "" {
			return nil, fmt.Errorf("%w: recipe line %d has no inventory item", ErrValidation, i+1)
		}
		if !(ing.Quantity > 0) {
			return nil, fmt.Errorf("%w: recipe line %d must use a positive quantity", ErrValidation, i+1)
		}
		if seen[ing.InventoryItemID] {
			return nil, fmt.Errorf("%w: inventory item %s appears twice in the recipe", ErrValidation, ing.InventoryItemID)
		}
		if _, err := s.inventoryRepo.GetByID(ing.InventoryItemID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: recipe references unknown inventory item %s", ErrValidation, ing.InventoryItemID)
			}
			return nil, fmt.Errorf("failed to check inventory item %s: %w", ing.InventoryItemID, err)
		}
		seen[ing.InventoryItemID] = true
		out = append(out, ing)
	}
	return out, nil
}

func (s *menuService) CreateMenuItem(req MenuItemRequest) (*models.MenuItem, error) {
	item, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	item.CreatedAt, item.UpdatedAt = now, now
	if _, err := s.menuRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	utils.LogInfo("Menu item created", map[string]interface{}{"menu_item_id": item.ID, "name": item.Name})
	s.publisher.Publish(notifications.NewEvent(notifications.KindMenuItemSaved, notifications.SeveritySuccess,
		fmt.Sprintf("Platillo '%s' guardado", item.Name), map[string]interface{}{"menu_item_id": item.ID}))
	out := item.Clone()
	return &out, nil
}

// UpdateMenuItem replaces the item. Lines already added to drafts or orders keep their snapshot.
func (s *menuService) UpdateMenuItem(itemID string, req MenuItemRequest) (*models.MenuItem, error) {
	existing, err := s.GetMenuItem(itemID)
	if err != nil {
		return nil, err
	}
	item, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = timeNow()

	if err := s.menuRepo.Update(item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrMenuItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	s.publisher.Publish(notifications.NewEvent(notifications.KindMenuItemSaved, notifications.SeverityInfo,
		fmt.Sprintf("Platillo '%s' actualizado", item.Name), map[string]interface{}{"menu_item_id": item.ID}))
	out := item.Clone()
	return &out, nil
}

func (s *menuService) DeleteMenuItem(itemID string) error {
	item, err := s.GetMenuItem(itemID)
	if err != nil {
		return err
	}
	if err := s.menuRepo.Delete(itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: id %s", ErrMenuItemNotFound, itemID)
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	s.publisher.Publish(notifications.NewEvent(notifications.KindMenuItemDeleted, notifications.SeveritySuccess,
		fmt.Sprintf("Platillo '%s' eliminado", item.Name), map[string]interface{}{"menu_item_id": itemID}))
	return nil
}

func (s *menuService) GetMenuItem(itemID string) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrMenuItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get menu item %s: %w", itemID, err)
	}
	return item, nil
}

func (s *menuService) ListMenuItems(category string) ([]models.MenuItem, error) {
	items, err := s.menuRepo.List()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return items, nil
	}
	filtered := []models.MenuItem{}
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *menuService) ListCategories() ([]string, error) {
	items, err := s.menuRepo.List()
	if err != nil {
		return nil, err
	}
	set := map[string]bool{}
	for _, it := range items {
		set[it.Category] = true
	}
	categories := make([]string, 0, len(set))
	for c := range set {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *menuService) GetCustomizationCatalog() models.CustomizationCatalog {
	return s.menuRepo.GetCatalog()
}

// UpdateCustomizationCatalog replaces the option sets. Submenus still referenced by menu items cannot be removed.
func (s *menuService) UpdateCustomizationCatalog(catalog models.CustomizationCatalog) (models.CustomizationCatalog, error) {
	if err := validateSauceList("wing", catalog.WingSauces); err != nil {
		return models.CustomizationCatalog{}, err
	}
	if err := validateSauceList("fry", catalog.FrySauces); err != nil {
		return models.CustomizationCatalog{}, err
	}
	if err := validateUniqueNames("flavor", catalog.Flavors); err != nil {
		return models.CustomizationCatalog{}, err
	}
	for key, choices := range catalog.SubmenuChoices {
		if strings.TrimSpace(key) == "" {
			return models.CustomizationCatalog{}, fmt.Errorf("%w: submenu key cannot be empty", ErrValidation)
		}
		if len(choices) == 0 {
			return models.CustomizationCatalog{}, fmt.Errorf("%w: submenu '%s' has no choices", ErrValidation, key)
		}
		if err := validateUniqueNames("choice in submenu '"+key+"'", choices); err != nil {
			return models.CustomizationCatalog{}, err
		}
	}

	items, err := s.menuRepo.List()
	if err != nil {
		return models.CustomizationCatalog{}, err
	}
	for _, it := range items {
		if it.SubmenuKey == nil {
			continue
		}
		if _, ok := catalog.SubmenuChoices[*it.SubmenuKey]; !ok {
			return models.CustomizationCatalog{}, fmt.Errorf("%w: submenu '%s' is still used by '%s'", ErrValidation, *it.SubmenuKey, it.Name)
		}
	}

	s.menuRepo.SetCatalog(catalog)
	return s.menuRepo.GetCatalog(), nil
}

func validateSauceList(kind string, sauces []models.Sauce) error {
	seen := map[string]bool{}
	for _, sauce := range sauces {
		key := strings.ToLower(strings.TrimSpace(sauce.Key))
		if key == "" {
			return fmt.Errorf("%w: %s sauce key cannot be empty", ErrValidation, kind)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate %s sauce '%s'", ErrValidation, kind, sauce.Key)
		}
		seen[key] = true
	}
	return nil
}

func validateUniqueNames(kind string, names []string) error {
	seen := map[string]bool{}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrValidation, kind)
		}
		if seen[n] {
			return fmt.Errorf("%w: duplicate %s '%s'", ErrValidation, kind, n)
		}
		seen[n] = true
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
