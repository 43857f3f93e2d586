// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/medora/internal/employee"
	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/product"
	"github.com/taibuivan/medora/internal/user"
)

// SeedFile is the document read by `medora-admin seed -f`.
type SeedFile struct {
	Admins    []SeedAdmin    `yaml:"admins"`
	Employees []SeedEmployee `yaml:"employees"`
	Products  []SeedProduct  `yaml:"products"`
}

type SeedAdmin struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
}

type SeedEmployee struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
}

type SeedProduct struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Stock       int     `yaml:"stock"`
	Category    string  `yaml:"category"`
}

// decodeSeed parses a seed document. Unknown keys are rejected so typos surface early.
func decodeSeed(reader io.Reader) (*SeedFile, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var file SeedFile
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &file, nil
}

type adminCreator interface {
	CreateAdmin(ctx context.Context, input user.RegisterInput) (*user.User, error)
}

type employeeCreator interface {
	Create(ctx context.Context, input employee.CreateInput) (*employee.Employee, error)
}

type productCreator interface {
	Create(ctx context.Context, input product.CreateInput) (*product.Product, error)
}

// seeder loads a [SeedFile] through the services so every record passes normal validation.
type seeder struct {
	admins    adminCreator
	employees employeeCreator
	products  productCreator
	logger    *zap.Logger
}

// seedReport counts what one run created and skipped.
type seedReport struct {
	Admins, Employees, Products, Skipped int
}

/*
Apply creates every record in file.

Accounts whose email is already registered are skipped, so a seed file can be
applied more than once. Products have no natural key and are always created.
*/
func (s *seeder) Apply(ctx context.Context, file *SeedFile) (seedReport, error) {
	var report seedReport

	for _, admin := range file.Admins {
		_, err := s.admins.CreateAdmin(ctx, user.RegisterInput{
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
			Password:  admin.Password,
		})
		switch {
		case apperr.HasCode(err, "CONFLICT"):
			s.logger.Info("seed_admin_skipped", zap.String("email", admin.Email))
			report.Skipped++
		case err != nil:
			return report, fmt.Errorf("admin %s: %w", admin.Email, err)
		default:
			report.Admins++
		}
	}

	for _, staff := range file.Employees {
		created, err := s.employees.Create(ctx, employee.CreateInput{
			Name:     staff.Name,
			Email:    staff.Email,
			Phone:    staff.Phone,
			Password: staff.Password,
		})
		switch {
		case apperr.HasCode(err, "CONFLICT"):
			s.logger.Info("seed_employee_skipped", zap.String("email", staff.Email))
			report.Skipped++
		case err != nil:
			return report, fmt.Errorf("employee %s: %w", staff.Email, err)
		default:
			s.logger.Info("seed_employee_created", zap.String("employee_id", created.EmployeeID))
			report.Employees++
		}
	}

	for _, item := range file.Products {
		price := item.Price
		if _, err := s.products.Create(ctx, product.CreateInput{
			Name:        item.Name,
			Description: item.Description,
			Price:       &price,
			Stock:       item.Stock,
			Category:    item.Category,
		}); err != nil {
			return report, fmt.Errorf("product %s: %w", item.Name, err)
		}
		report.Products++
	}

	return report, nil
}
