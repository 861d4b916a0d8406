package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yuqie6/stresssense/internal/dto"
	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
)

var errHoursLength = errors.New("hours 必须恰好包含 24 项")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误信息里使用 JSON 字段名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func readJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// decodeLedgerRequest 解析并校验请求体，失败时已写出 400
func decodeLedgerRequest(w http.ResponseWriter, r *http.Request) (schema.DayLedger, string, bool) {
	var req dto.LedgerRequestDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return schema.DayLedger{}, "", false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, formatValidationError(err).Error())
		return schema.DayLedger{}, "", false
	}
	ledger, err := parseHours(req.Hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return schema.DayLedger{}, "", false
	}
	return ledger, req.Date, true
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "len":
		return fmt.Sprintf("%s 必须恰好包含 %s 项", e.Field(), e.Param())
	case "required":
		return fmt.Sprintf("%s 不能为空", e.Field())
	case "datetime":
		return fmt.Sprintf("%s 格式应为 YYYY-MM-DD", e.Field())
	default:
		return fmt.Sprintf("%s 校验失败 (%s)", e.Field(), e.Tag())
	}
}

// parseHours 24 个活动名转为一天的记录
func parseHours(hours []string) (schema.DayLedger, error) {
	ledger := schema.NewDayLedger()
	if len(hours) != schema.HoursPerDay {
		return ledger, fmt.Errorf("%w，实际 %d 项", errHoursLength, len(hours))
	}
	for i, name := range hours {
		slot, err := schema.ParseHourSlot(name)
		if err != nil {
			return ledger, fmt.Errorf("第 %d 小时: %w", i, err)
		}
		ledger[i] = slot
	}
	return ledger, nil
}

func toRecordDTO(r schema.DailyRecord) dto.DailyRecordDTO {
	return dto.DailyRecordDTO{
		Date:    r.Date,
		Rest:    r.Rest,
		Study:   r.Study,
		Game:    r.Game,
		Other:   r.Other,
		Stress:  r.Stress,
		Status:  string(r.Status),
		Summary: r.Summary,
	}
}

func toEvaluationDTO(f service.Formula, ev service.Evaluation) dto.EvaluationDTO {
	hours := make([]string, 0, len(ev.Ledger))
	for _, slot := range ev.Ledger {
		hours = append(hours, string(slot))
	}
	return dto.EvaluationDTO{
		Formula: string(f),
		Hours:   hours,
		Totals: dto.TotalsDTO{
			Rest:  ev.Totals.Rest,
			Study: ev.Totals.Study,
			Game:  ev.Totals.Game,
			Other: ev.Totals.Other,
		},
		Score:       ev.Score,
		Trend:       ev.Trend[:],
		Peak:        ev.Signals.Peak,
		EveningAvg:  ev.Signals.EveningAvg,
		StudyStreak: ev.Signals.StudyStreak,
		Advice: dto.AdviceDTO{
			Text:   ev.Advice.Text,
			Status: string(ev.Advice.Status),
			Rule:   ev.Advice.Rule,
		},
	}
}
