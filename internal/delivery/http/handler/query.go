package handler

import (
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
	apperrors "github.com/waste-analytics/internal/pkg/errors"
)

// queryList собирает список из повторяющихся параметров и/или значений через запятую:
// ?cities=Delhi&cities=Mumbai и ?cities=Delhi,Mumbai эквивалентны.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// queryFloat - отсутствующий параметр даёт 0; нечисловой, NaN и Inf - INVALID_REQUEST
func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			key: "number",
		})
	}
	return v, nil
}
