package response

import "order_desk/internal/usecase"

type VariantResultResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Available int     `json:"available"`
	Price     string  `json:"price"`
	Thumbnail *string `json:"thumbnail"`
}

type SearchResultResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Thumbnail *string                 `json:"thumbnail"`
	Available int                     `json:"available"`
	Price     string                  `json:"price"`
	Variants  []VariantResultResponse `json:"variants,omitempty"`
}

type TagResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type SearchResponse struct {
	Query         string                 `json:"query"`
	Results       []SearchResultResponse `json:"results"`
	Total         int                    `json:"total"`
	HasMore       bool                   `json:"has_more"`
	Loading       bool                   `json:"loading"`
	Selected      []TagResponse          `json:"selected"`
	Notifications []NotificationResponse `json:"notifications"`
}

func FromSearchView(v usecase.SearchView) SearchResponse {
	res := SearchResponse{
		Query:         v.Query,
		Results:       make([]SearchResultResponse, 0, len(v.Results)),
		Total:         v.Total,
		HasMore:       v.HasMore,
		Loading:       v.Loading,
		Selected:      make([]TagResponse, 0, len(v.Selected)),
		Notifications: fromNotifications(v.Notifications),
	}
	for _, r := range v.Results {
		item := SearchResultResponse{
			ID:        r.ID,
			Title:     r.Title,
			Thumbnail: r.Thumbnail,
			Available: r.Available,
			Price:     money(r.Price),
		}
		for _, vr := range r.Variants {
			item.Variants = append(item.Variants, VariantResultResponse{
				ID:        vr.ID,
				Title:     vr.Title,
				Available: vr.Available,
				Price:     money(vr.Price),
				Thumbnail: vr.Thumbnail,
			})
		}
		res.Results = append(res.Results, item)
	}
	for _, t := range v.Selected {
		res.Selected = append(res.Selected, TagResponse{ID: t.ID, Title: t.Title})
	}
	return res
}
