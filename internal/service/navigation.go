package service

import (
	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/navigation"
)

// NavigationView is what the navigation bar needs to render.
type NavigationView struct {
	Languages       []navigation.Option   `json:"languages"`
	Locations       []navigation.Option   `json:"locations"`
	DefaultLanguage string                `json:"defaultLanguage"`
	DefaultLocation string                `json:"defaultLocation"`
	Categories      []string              `json:"categories"`
	Menu            []navigation.MenuItem `json:"menu"`
	User            *domain.Requester     `json:"user"`
	Solid           bool                  `json:"solid"`
	ShowCategories  bool                  `json:"showCategories"`
}

// Navigation builds the navigation view for the session on path. r is nil
// for anonymous visitors.
func (s *Service) Navigation(r *domain.Requester, path string) *NavigationView {
	if path == "" {
		path = "/"
	}
	return &NavigationView{
		Languages:       navigation.Languages(),
		Locations:       navigation.Locations(),
		DefaultLanguage: navigation.DefaultLanguage,
		DefaultLocation: navigation.DefaultLocation,
		Categories:      navigation.Categories(),
		Menu:            navigation.MenuFor(r),
		User:            r,
		Solid:           navigation.Solid(false, path),
		ShowCategories:  navigation.CategoriesVisible(false, path),
	}
}
