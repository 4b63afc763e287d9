package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Record - одно наблюдение город / тип отходов / год из датасета.
// После загрузки не изменяется.
type Record struct {
	City                    string  `json:"city" db:"city"`
	WasteType               string  `json:"WasteType" db:"waste_type"`
	WasteGenerated          float64 `json:"WasteGenerated" db:"waste_generated"`
	RecyclingRate           float64 `json:"RecyclingRate" db:"recycling_rate"`
	MES                     float64 `json:"MES" db:"mes"`
	DisposalMethod          string  `json:"disposal_method" db:"disposal_method"`
	CostOfWasteManagement   float64 `json:"CostofWasteManagement" db:"cost_of_waste_management"`
	AwarenessCampaignsCount int     `json:"AwarenessCampaignsCount" db:"awareness_campaigns_count"`
	PopulationDensity       float64 `json:"PopulationDensity" db:"population_density"`
	LandfillCapacity        float64 `json:"LandfillCapacity" db:"landfill_capacity"`
	Year                    int     `json:"Year" db:"year"`
}

// Field - числовое поле записи, по которому можно агрегировать
type Field string

const (
	FieldWasteGenerated          Field = "WasteGenerated"
	FieldRecyclingRate           Field = "RecyclingRate"
	FieldMES                     Field = "MES"
	FieldCostOfWasteManagement   Field = "CostofWasteManagement"
	FieldAwarenessCampaignsCount Field = "AwarenessCampaignsCount"
	FieldPopulationDensity       Field = "PopulationDensity"
	FieldLandfillCapacity        Field = "LandfillCapacity"
	FieldYear                    Field = "Year"
)

// Value возвращает значение числового поля. Неизвестное поле даёт 0.
func (r Record) Value(f Field) float64 {
	switch f {
	case FieldWasteGenerated:
		return r.WasteGenerated
	case FieldRecyclingRate:
		return r.RecyclingRate
	case FieldMES:
		return r.MES
	case FieldCostOfWasteManagement:
		return r.CostOfWasteManagement
	case FieldAwarenessCampaignsCount:
		return float64(r.AwarenessCampaignsCount)
	case FieldPopulationDensity:
		return r.PopulationDensity
	case FieldLandfillCapacity:
		return r.LandfillCapacity
	case FieldYear:
		return float64(r.Year)
	default:
		return 0
	}
}

// Strings возвращает строковое представление всех полей в порядке датасета.
// Используется полнотекстовым поиском по таблице.
// Числа всегда без экспоненты, отсутствующие поля ищутся как "0" или "".
func (r Record) Strings() []string {
	return []string{
		r.City,
		r.WasteType,
		formatNumber(r.WasteGenerated),
		formatNumber(r.RecyclingRate),
		formatNumber(r.MES),
		r.DisposalMethod,
		formatNumber(r.CostOfWasteManagement),
		strconv.Itoa(r.AwarenessCampaignsCount),
		formatNumber(r.PopulationDensity),
		formatNumber(r.LandfillCapacity),
		strconv.Itoa(r.Year),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// UnmarshalJSON декодирует запись терпимо к пропускам: отсутствующие и null
// поля становятся 0 или пустой строкой, числа в виде строк приводятся через cast.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("record is not an object: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("record is null")
	}

	var rec Record
	var err error

	if rec.City, err = stringField(raw, "city"); err != nil {
		return err
	}
	if rec.WasteType, err = stringField(raw, "WasteType"); err != nil {
		return err
	}
	if rec.DisposalMethod, err = stringField(raw, "disposal_method"); err != nil {
		return err
	}
	if rec.WasteGenerated, err = numberField(raw, "WasteGenerated"); err != nil {
		return err
	}
	if rec.RecyclingRate, err = numberField(raw, "RecyclingRate"); err != nil {
		return err
	}
	if rec.MES, err = numberField(raw, "MES"); err != nil {
		return err
	}
	if rec.CostOfWasteManagement, err = numberField(raw, "CostofWasteManagement"); err != nil {
		return err
	}
	if rec.PopulationDensity, err = numberField(raw, "PopulationDensity"); err != nil {
		return err
	}
	if rec.LandfillCapacity, err = numberField(raw, "LandfillCapacity"); err != nil {
		return err
	}

	campaigns, err := numberField(raw, "AwarenessCampaignsCount")
	if err != nil {
		return err
	}
	rec.AwarenessCampaignsCount = cast.ToInt(campaigns)

	year, err := numberField(raw, "Year")
	if err != nil {
		return err
	}
	rec.Year = cast.ToInt(year)

	*r = rec
	return nil
}

func stringField(raw map[string]interface{}, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return "", fmt.Errorf("field %s: unexpected type %T", key, v)
	}
	return cast.ToStringE(v)
}

func numberField(raw map[string]interface{}, key string) (float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return 0, fmt.Errorf("field %s: unexpected type %T", key, v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		// Нечисловая строка трактуется как отсутствующее значение
		return 0, nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, nil
	}
	return f, nil
}

// DecodeRecords разбирает документ датасета: JSON-массив объектов записей.
// Порядок записей сохраняется. Любой элемент, не являющийся объектом, - ошибка.
func DecodeRecords(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("dataset document is not a JSON array")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode dataset array: %w", err)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("dataset item %d is not an object", i)
		}

		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("dataset item %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
