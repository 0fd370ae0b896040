// reports.go
//
// A property rental data service: portfolio, tenants, payments and reports over REST
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of rentdb.
// rentdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// rentdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with rentdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"sort"
	"time"

	"github.com/localnerve/rentdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

const revenueMonths = 12

// MonthlyRevenue is the total of paid payments in one calendar month
type MonthlyRevenue struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// ProvinceDebt is the rent owed by rented, not-paid properties of one province
type ProvinceDebt struct {
	Province  string  `json:"province"`
	TotalDebt float64 `json:"total_debt"`
}

// StatusCount counts properties per occupancy status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// PaymentStatusCount counts rented properties per payment status
type PaymentStatusCount struct {
	PaymentStatus string `json:"payment_status"`
	Count         int64  `json:"count"`
}

// Summary is the dashboard's composite report
type Summary struct {
	RevenueByMonth     []MonthlyRevenue     `json:"revenueByMonth"`
	DebtByProvince     []ProvinceDebt       `json:"debtByProvince"`
	OccupancyStats     []StatusCount        `json:"occupancyStats"`
	PaymentStatusStats []PaymentStatusCount `json:"paymentStatusStats"`
}

// Stats is the dashboard's headline numbers
type Stats struct {
	TotalProperties  int64   `json:"totalProperties"`
	RentedProperties int64   `json:"rentedProperties"`
	TotalRent        float64 `json:"totalRent"`
	TotalDebt        float64 `json:"totalDebt"`
	ActiveUsers      int64   `json:"activeUsers"`
}

// report tags a read-only aggregate query so it is recognizable in the query log
func report(db *gorm.DB, name string) *gorm.DB {
	return db.Clauses(hints.Comment("select", "report:"+name))
}

// SummaryReport computes every aggregate fresh from the store. The revenue window is the twelve
// calendar months ending with the month of now.
func SummaryReport(db *gorm.DB, now time.Time) (*Summary, error) {
	revenue, err := revenueByMonth(db, now)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RevenueByMonth:     revenue,
		DebtByProvince:     []ProvinceDebt{},
		OccupancyStats:     []StatusCount{},
		PaymentStatusStats: []PaymentStatusCount{},
	}

	if err := report(db, "debt_by_province").
		Model(&models.Property{}).
		Select("province, COALESCE(SUM(rent_amount), 0) AS total_debt").
		Where("status = ? AND payment_status <> ?", models.PropertyRented, models.PaymentPaid).
		Group("province").
		Order("province").
		Scan(&summary.DebtByProvince).Error; err != nil {
		return nil, err
	}

	if err := report(db, "occupancy").
		Model(&models.Property{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&summary.OccupancyStats).Error; err != nil {
		return nil, err
	}

	if err := report(db, "payment_status").
		Model(&models.Property{}).
		Select("payment_status, COUNT(*) AS count").
		Where("status = ?", models.PropertyRented).
		Group("payment_status").
		Order("payment_status").
		Scan(&summary.PaymentStatusStats).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

// revenueByMonth groups in Go: month extraction differs per dialect and the embedded driver
// stores timestamps as text
func revenueByMonth(db *gorm.DB, now time.Time) ([]MonthlyRevenue, error) {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -revenueMonths, 0)

	var rows []struct {
		Date   time.Time
		Amount float64
	}
	if err := report(db, "revenue_by_month").
		Model(&models.Payment{}).
		Select("date, amount").
		Where("status = ? AND date >= ? AND date < ?", models.PaymentPaid, start, end).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for _, row := range rows {
		d := row.Date.UTC()
		if d.Before(start) || !d.Before(end) {
			continue
		}
		totals[d.Format("2006-01")] += row.Amount
	}

	revenue := make([]MonthlyRevenue, 0, len(totals))
	for month, total := range totals {
		revenue = append(revenue, MonthlyRevenue{Month: month, Total: total})
	}
	sort.Slice(revenue, func(i, j int) bool {
		return revenue[i].Month > revenue[j].Month
	})

	return revenue, nil
}

// StatsReport computes the headline numbers
func StatsReport(db *gorm.DB) (*Stats, error) {
	stats := &Stats{}

	if err := report(db, "stats").Model(&models.Property{}).Count(&stats.TotalProperties).Error; err != nil {
		return nil, err
	}
	if err := report(db, "stats").Model(&models.Property{}).
		Where("status = ?", models.PropertyRented).
		Count(&stats.RentedProperties).Error; err != nil {
		return nil, err
	}

	var rent struct {
		TotalRent float64
		TotalDebt float64
	}
	if err := report(db, "stats").Model(&models.Property{}).
		Select("COALESCE(SUM(rent_amount), 0) AS total_rent, "+
			"COALESCE(SUM(CASE WHEN payment_status <> ? THEN rent_amount ELSE 0 END), 0) AS total_debt",
			models.PaymentPaid).
		Where("status = ?", models.PropertyRented).
		Scan(&rent).Error; err != nil {
		return nil, err
	}
	stats.TotalRent = rent.TotalRent
	stats.TotalDebt = rent.TotalDebt

	if err := report(db, "stats").Model(&models.User{}).
		Where("status = ?", models.UserActive).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
