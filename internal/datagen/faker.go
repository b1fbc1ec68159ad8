// Package datagen generates sample source files for salesmart.
package datagen

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Int generates a random integer in [min, max].
func (f *Faker) Int(min, max int) int {
	return f.faker.Number(min, max)
}

// Price generates a random price between min and max.
func (f *Faker) Price(min, max float64) float64 {
	return f.faker.Price(min, max)
}

// Float generates a random float in [min, max).
func (f *Faker) Float(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// ProductName generates a random product name.
func (f *Faker) ProductName() string {
	return f.faker.ProductName()
}

// ProductCategory generates a random product category.
func (f *Faker) ProductCategory() string {
	return f.faker.ProductCategory()
}

// DateRange generates a random date between start and end.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}
