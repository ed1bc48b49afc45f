package config

import (
	"errors"
	"fmt"
	"time"
)

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver))
	}

	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required"))
	}

	if c.Database.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("database.pool_size must be at least 1, got %d", c.Database.PoolSize))
	}

	if c.Database.AcquireTimeout <= 0 {
		errs = append(errs, errors.New("database.acquire_timeout must be positive"))
	}

	if c.Salon.SlotsPerDay < 1 {
		errs = append(errs, fmt.Errorf("salon.slots_per_day must be at least 1, got %d", c.Salon.SlotsPerDay))
	}

	if _, err := time.LoadLocation(c.Salon.Timezone); err != nil || c.Salon.Timezone == "" {
		errs = append(errs, fmt.Errorf("salon.timezone %q is not a valid IANA zone", c.Salon.Timezone))
	}

	if c.API.DefaultPageSize < 1 || c.API.MaxPageSize < c.API.DefaultPageSize {
		errs = append(errs, fmt.Errorf(
			"api page sizes invalid: default=%d max=%d",
			c.API.DefaultPageSize, c.API.MaxPageSize,
		))
	}

	return errors.Join(errs...)
}
