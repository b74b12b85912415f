// Package models contains the GORM persistence models for products, sales and dues.
// Domain entities stay free of ORM tags; each model converts with ToDomain/FromDomain
// and repositories only ever touch the models.
package models
