package service

import "github.com/Klyucherov/Async-API-sprint-1/internal/domain"

// normalizePage clamps pagination parameters to the public API bounds.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if size < 1 {
		size = domain.DefaultSize
	}
	if size > domain.MaxSize {
		size = domain.MaxSize
	}
	return page, size
}

// offset converts a 1-based page into a backend offset.
func offset(page, size int) int {
	return (page - 1) * size
}
