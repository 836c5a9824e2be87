package menu

import "brigade/internal/domain"

type MenuItemDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	PrepTimeMinutes int     `json:"prepTimeMinutes"`
	Available       bool    `json:"available"`
}

type ListMenuResponse struct {
	Items []MenuItemDTO `json:"items"`
}

func toMenuItemDTO(item domain.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Category:        item.Category,
		Price:           item.Price,
		PrepTimeMinutes: item.PrepTimeMinutes,
		Available:       item.Available,
	}
}
