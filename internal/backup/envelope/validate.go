package envelope

// validate.go checks an arbitrary decoded JSON value against the envelope
// schema. Validation is purely structural: required fields, types, enum
// membership, parseable timestamps, non-negative quantities. Referential
// integrity (dangling parentId and the like) is the importer's concern.
//
// Validation never panics and never stops at the first problem; it collects
// every error with a dotted field path so a caller can show all of them at
// once.

import (
	"fmt"
	"math"
	"time"
)

// FieldError is a single structural problem found in a document.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the discriminated outcome of Validate. When Valid is true,
// Backup holds the typed envelope; otherwise Errors is non-empty and Backup
// is nil.
type Result struct {
	Valid  bool
	Backup *Backup
	Errors []FieldError
}

// Validate checks doc (the parsed contents of an uploaded document, as
// produced by encoding/json into interface values) against the envelope
// schema.
func Validate(doc any) Result {
	v := &validator{}

	root, ok := v.object(doc, "document")
	if !ok {
		return v.result(nil)
	}

	b := &Backup{}

	metaRaw, exists := root["meta"]
	if !exists {
		v.fail("meta", "required field is missing")
	} else {
		b.Meta = v.parseMeta(metaRaw)
	}

	dataRaw, exists := root["data"]
	if !exists {
		v.fail("data", "required field is missing")
	} else if data, ok := v.object(dataRaw, "data"); ok {
		b.Data = v.parseData(data)
	}

	return v.result(b)
}

type validator struct {
	errs []FieldError
}

func (v *validator) fail(path, msg string) {
	v.errs = append(v.errs, FieldError{Path: path, Message: msg})
}

func (v *validator) result(b *Backup) Result {
	if len(v.errs) > 0 {
		return Result{Valid: false, Errors: v.errs}
	}
	return Result{Valid: true, Backup: b}
}

// clean reports whether no error was recorded since mark.
func (v *validator) clean(mark int) bool {
	return len(v.errs) == mark
}

func (v *validator) object(val any, path string) (map[string]any, bool) {
	obj, ok := val.(map[string]any)
	if !ok {
		v.fail(path, "must be an object")
		return nil, false
	}
	return obj, true
}

// str fetches a string field. A required field that is missing, null or of
// the wrong type records an error; an optional one simply returns "".
func (v *validator) str(obj map[string]any, path, key string, required bool) (string, bool) {
	raw, exists := obj[key]
	if !exists || raw == nil {
		if required {
			v.fail(join(path, key), "required field is missing")
			return "", false
		}
		return "", true
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(join(path, key), "must be a string")
		return "", false
	}
	if required && s == "" {
		v.fail(join(path, key), "must not be empty")
		return "", false
	}
	return s, true
}

// timestamp fetches a string field that must parse as an RFC 3339 timestamp.
func (v *validator) timestamp(obj map[string]any, path, key string, required bool) (string, bool) {
	s, ok := v.str(obj, path, key, required)
	if !ok || s == "" {
		return s, ok
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		v.fail(join(path, key), "must be an RFC 3339 timestamp")
		return "", false
	}
	return s, true
}

// number fetches a numeric field; nonNegative additionally rejects values
// below zero.
func (v *validator) number(obj map[string]any, path, key string, required, nonNegative bool) (float64, bool) {
	raw, exists := obj[key]
	if !exists || raw == nil {
		if required {
			v.fail(join(path, key), "required field is missing")
			return 0, false
		}
		return 0, true
	}
	f, ok := raw.(float64)
	if !ok {
		v.fail(join(path, key), "must be a number")
		return 0, false
	}
	if nonNegative && f < 0 {
		v.fail(join(path, key), "must not be negative")
		return 0, false
	}
	return f, true
}

// integer is number with a whole-value check.
func (v *validator) integer(obj map[string]any, path, key string, required, nonNegative bool) (int, bool) {
	f, ok := v.number(obj, path, key, required, nonNegative)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		v.fail(join(path, key), "must be an integer")
		return 0, false
	}
	return int(f), true
}

func (v *validator) boolean(obj map[string]any, path, key string, required bool) (bool, bool) {
	raw, exists := obj[key]
	if !exists || raw == nil {
		if required {
			v.fail(join(path, key), "required field is missing")
			return false, false
		}
		return false, true
	}
	b, ok := raw.(bool)
	if !ok {
		v.fail(join(path, key), "must be a boolean")
		return false, false
	}
	return b, true
}

// ref fetches an optional identifier reference: absent or null yields nil.
func (v *validator) ref(obj map[string]any, path, key string) *string {
	raw, exists := obj[key]
	if !exists || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		v.fail(join(path, key), "must be a non-empty string or null")
		return nil
	}
	return &s
}

// optNumberPtr fetches an optional non-negative number as a pointer.
func (v *validator) optNumberPtr(obj map[string]any, path, key string) *float64 {
	raw, exists := obj[key]
	if !exists || raw == nil {
		return nil
	}
	f, ok := raw.(float64)
	if !ok {
		v.fail(join(path, key), "must be a number")
		return nil
	}
	if f < 0 {
		v.fail(join(path, key), "must not be negative")
		return nil
	}
	return &f
}

// optTimestampPtr fetches an optional RFC 3339 timestamp as a pointer.
func (v *validator) optTimestampPtr(obj map[string]any, path, key string) *string {
	raw, exists := obj[key]
	if !exists || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(join(path, key), "must be a string")
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		v.fail(join(path, key), "must be an RFC 3339 timestamp")
		return nil
	}
	return &s
}

func (v *validator) enum(obj map[string]any, path, key string, allowed []string) (string, bool) {
	s, ok := v.str(obj, path, key, true)
	if !ok {
		return "", false
	}
	for _, a := range allowed {
		if s == a {
			return s, true
		}
	}
	v.fail(join(path, key), fmt.Sprintf("must be one of %v", allowed))
	return "", false
}

// array fetches an optional array field; absent or null yields nil without
// error.
func (v *validator) array(obj map[string]any, path, key string) ([]any, bool) {
	raw, exists := obj[key]
	if !exists || raw == nil {
		return nil, true
	}
	arr, ok := raw.([]any)
	if !ok {
		v.fail(join(path, key), "must be an array")
		return nil, false
	}
	return arr, true
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func idx(path, key string, i int) string {
	return fmt.Sprintf("%s[%d]", join(path, key), i)
}

func (v *validator) parseMeta(raw any) Meta {
	m := Meta{}
	obj, ok := v.object(raw, "meta")
	if !ok {
		return m
	}
	m.SchemaVersion, _ = v.str(obj, "meta", "schemaVersion", true)
	m.ExportedAt, _ = v.timestamp(obj, "meta", "exportedAt", true)
	m.OwnerID, _ = v.str(obj, "meta", "ownerId", true)
	m.OwnerEmail, _ = v.str(obj, "meta", "ownerEmail", true)

	if arr, ok := v.array(obj, "meta", "includedModules"); ok {
		for i, el := range arr {
			s, ok := el.(string)
			if !ok {
				v.fail(idx("meta", "includedModules", i), "must be a string")
				continue
			}
			m.IncludedModules = append(m.IncludedModules, s)
		}
	}
	return m
}

func (v *validator) parseData(data map[string]any) Data {
	d := Data{}

	if raw, exists := data["profile"]; exists && raw != nil {
		p := v.parseProfile(raw)
		d.Profile = &p
	}

	d.Workouts = parseArray(v, data, "workouts", (*validator).parseWorkout)
	d.WorkoutTemplates = parseArray(v, data, "workoutTemplates", (*validator).parseWorkoutTemplate)
	d.Transactions = parseArray(v, data, "transactions", (*validator).parseTransaction)
	d.Investments = parseArray(v, data, "investments", (*validator).parseInvestment)
	d.Budgets = parseArray(v, data, "budgets", (*validator).parseBudget)
	d.Meals = parseArray(v, data, "meals", (*validator).parseMeal)
	d.NutritionGoals = parseArray(v, data, "nutritionGoals", (*validator).parseNutritionGoal)
	d.MealTemplates = parseArray(v, data, "mealTemplates", (*validator).parseMealTemplate)
	d.FamilyMembers = parseArray(v, data, "familyMembers", (*validator).parseFamilyMember)
	d.TimeLogs = parseArray(v, data, "timeLogs", (*validator).parseTimeLog)
	d.Events = parseArray(v, data, "events", (*validator).parseEvent)
	d.Reminders = parseArray(v, data, "reminders", (*validator).parseReminder)
	d.CatalogItems = parseArray(v, data, "catalogItems", (*validator).parseCatalogItem)

	return d
}

// parseArray validates an optional collection under data.<key>, delegating
// per-element parsing to fn.
func parseArray[T any](v *validator, data map[string]any, key string, fn func(*validator, string, any) (T, bool)) []T {
	arr, ok := v.array(data, "data", key)
	if !ok || arr == nil {
		return nil
	}
	out := make([]T, 0, len(arr))
	for i, raw := range arr {
		el, ok := fn(v, idx("data", key, i), raw)
		if ok {
			out = append(out, el)
		}
	}
	return out
}

func (v *validator) parseProfile(raw any) Profile {
	p := Profile{}
	obj, ok := v.object(raw, "data.profile")
	if !ok {
		return p
	}
	p.DisplayName, _ = v.str(obj, "data.profile", "displayName", true)
	p.Timezone, _ = v.str(obj, "data.profile", "timezone", false)
	p.BirthDate = v.optTimestampPtr(obj, "data.profile", "birthDate")
	p.HeightCm = v.optNumberPtr(obj, "data.profile", "heightCm")
	p.WeightKg = v.optNumberPtr(obj, "data.profile", "weightKg")
	return p
}

func (v *validator) parseWorkout(path string, raw any) (Workout, bool) {
	w := Workout{}
	obj, ok := v.object(raw, path)
	if !ok {
		return w, false
	}
	mark := len(v.errs)
	w.ID, _ = v.str(obj, path, "id", true)
	w.Name, _ = v.str(obj, path, "name", true)
	w.PerformedAt, _ = v.timestamp(obj, path, "performedAt", true)
	w.Notes, _ = v.str(obj, path, "notes", false)

	if arr, ok := v.array(obj, path, "exercises"); ok {
		for i, el := range arr {
			ex, ok := v.parseExercise(idx(path, "exercises", i), el)
			if ok {
				w.Exercises = append(w.Exercises, ex)
			}
		}
	}
	return w, v.clean(mark)
}

func (v *validator) parseExercise(path string, raw any) (Exercise, bool) {
	e := Exercise{}
	obj, ok := v.object(raw, path)
	if !ok {
		return e, false
	}
	mark := len(v.errs)
	e.ID, _ = v.str(obj, path, "id", true)
	e.Name, _ = v.str(obj, path, "name", true)
	e.ExerciseTypeID = v.ref(obj, path, "exerciseTypeId")

	if arr, ok := v.array(obj, path, "sets"); ok {
		for i, el := range arr {
			s, ok := v.parseExerciseSet(idx(path, "sets", i), el)
			if ok {
				e.Sets = append(e.Sets, s)
			}
		}
	}
	if arr, ok := v.array(obj, path, "progress"); ok {
		for i, el := range arr {
			p, ok := v.parseProgressSample(idx(path, "progress", i), el)
			if ok {
				e.Progress = append(e.Progress, p)
			}
		}
	}
	return e, v.clean(mark)
}

func (v *validator) parseExerciseSet(path string, raw any) (ExerciseSet, bool) {
	s := ExerciseSet{}
	obj, ok := v.object(raw, path)
	if !ok {
		return s, false
	}
	mark := len(v.errs)
	s.ID, _ = v.str(obj, path, "id", true)
	s.SetNumber, _ = v.integer(obj, path, "setNumber", true, true)
	s.Reps, _ = v.integer(obj, path, "reps", true, true)
	s.WeightKg, _ = v.number(obj, path, "weightKg", true, true)
	return s, v.clean(mark)
}

func (v *validator) parseProgressSample(path string, raw any) (ProgressSample, bool) {
	p := ProgressSample{}
	obj, ok := v.object(raw, path)
	if !ok {
		return p, false
	}
	mark := len(v.errs)
	p.ID, _ = v.str(obj, path, "id", true)
	p.RecordedAt, _ = v.timestamp(obj, path, "recordedAt", true)
	p.MaxWeightKg, _ = v.number(obj, path, "maxWeightKg", true, true)
	p.TotalReps, _ = v.integer(obj, path, "totalReps", true, true)
	return p, v.clean(mark)
}

func (v *validator) parseWorkoutTemplate(path string, raw any) (WorkoutTemplate, bool) {
	w := WorkoutTemplate{}
	obj, ok := v.object(raw, path)
	if !ok {
		return w, false
	}
	mark := len(v.errs)
	w.ID, _ = v.str(obj, path, "id", true)
	w.Name, _ = v.str(obj, path, "name", true)
	w.Notes, _ = v.str(obj, path, "notes", false)

	if arr, ok := v.array(obj, path, "exercises"); ok {
		for i, el := range arr {
			te, ok := v.parseTemplateExercise(idx(path, "exercises", i), el)
			if ok {
				w.Exercises = append(w.Exercises, te)
			}
		}
	}
	return w, v.clean(mark)
}

func (v *validator) parseTemplateExercise(path string, raw any) (TemplateExercise, bool) {
	te := TemplateExercise{}
	obj, ok := v.object(raw, path)
	if !ok {
		return te, false
	}
	mark := len(v.errs)
	te.ID, _ = v.str(obj, path, "id", true)
	te.Name, _ = v.str(obj, path, "name", true)
	te.TargetSets, _ = v.integer(obj, path, "targetSets", true, true)
	te.TargetReps, _ = v.integer(obj, path, "targetReps", true, true)
	te.ExerciseTypeID = v.ref(obj, path, "exerciseTypeId")
	return te, v.clean(mark)
}

func (v *validator) parseTransaction(path string, raw any) (Transaction, bool) {
	tr := Transaction{}
	obj, ok := v.object(raw, path)
	if !ok {
		return tr, false
	}
	mark := len(v.errs)
	tr.ID, _ = v.str(obj, path, "id", true)
	tr.Amount, _ = v.number(obj, path, "amount", true, true)
	tr.Direction, _ = v.enum(obj, path, "direction", TransactionDirections)
	tr.OccurredAt, _ = v.timestamp(obj, path, "occurredAt", true)
	tr.Description, _ = v.str(obj, path, "description", false)
	tr.TypeID = v.ref(obj, path, "typeId")
	tr.CategoryID = v.ref(obj, path, "categoryId")
	return tr, v.clean(mark)
}

func (v *validator) parseInvestment(path string, raw any) (Investment, bool) {
	in := Investment{}
	obj, ok := v.object(raw, path)
	if !ok {
		return in, false
	}
	mark := len(v.errs)
	in.ID, _ = v.str(obj, path, "id", true)
	in.Name, _ = v.str(obj, path, "name", true)
	in.Amount, _ = v.number(obj, path, "amount", true, true)
	in.TypeID = v.ref(obj, path, "typeId")
	in.PurchasedAt, _ = v.timestamp(obj, path, "purchasedAt", true)
	in.Notes, _ = v.str(obj, path, "notes", false)
	return in, v.clean(mark)
}

func (v *validator) parseBudget(path string, raw any) (Budget, bool) {
	b := Budget{}
	obj, ok := v.object(raw, path)
	if !ok {
		return b, false
	}
	mark := len(v.errs)
	b.ID, _ = v.str(obj, path, "id", true)
	b.Name, _ = v.str(obj, path, "name", true)
	b.Amount, _ = v.number(obj, path, "amount", true, true)
	b.CategoryID = v.ref(obj, path, "categoryId")
	b.PeriodStart, _ = v.timestamp(obj, path, "periodStart", true)
	b.PeriodEnd, _ = v.timestamp(obj, path, "periodEnd", true)
	return b, v.clean(mark)
}

func (v *validator) parseMeal(path string, raw any) (Meal, bool) {
	m := Meal{}
	obj, ok := v.object(raw, path)
	if !ok {
		return m, false
	}
	mark := len(v.errs)
	m.ID, _ = v.str(obj, path, "id", true)
	m.Name, _ = v.str(obj, path, "name", true)
	m.MealType, _ = v.enum(obj, path, "mealType", MealTypes)
	m.ConsumedAt, _ = v.timestamp(obj, path, "consumedAt", true)
	m.Notes, _ = v.str(obj, path, "notes", false)

	if arr, ok := v.array(obj, path, "foodItems"); ok {
		for i, el := range arr {
			fi, ok := v.parseFoodItem(idx(path, "foodItems", i), el)
			if ok {
				m.FoodItems = append(m.FoodItems, fi)
			}
		}
	}
	return m, v.clean(mark)
}

func (v *validator) parseFoodItem(path string, raw any) (FoodItem, bool) {
	fi := FoodItem{}
	obj, ok := v.object(raw, path)
	if !ok {
		return fi, false
	}
	mark := len(v.errs)
	fi.ID, _ = v.str(obj, path, "id", true)
	fi.Name, _ = v.str(obj, path, "name", true)
	fi.Quantity, _ = v.number(obj, path, "quantity", true, true)
	fi.Unit, _ = v.str(obj, path, "unit", false)
	fi.Calories, _ = v.number(obj, path, "calories", true, true)
	fi.ProteinG, _ = v.number(obj, path, "proteinG", true, true)
	fi.CarbsG, _ = v.number(obj, path, "carbsG", true, true)
	fi.FatG, _ = v.number(obj, path, "fatG", true, true)
	return fi, v.clean(mark)
}

func (v *validator) parseNutritionGoal(path string, raw any) (NutritionGoal, bool) {
	g := NutritionGoal{}
	obj, ok := v.object(raw, path)
	if !ok {
		return g, false
	}
	mark := len(v.errs)
	g.ID, _ = v.str(obj, path, "id", true)
	g.Calories, _ = v.number(obj, path, "calories", true, true)
	g.ProteinG, _ = v.number(obj, path, "proteinG", true, true)
	g.CarbsG, _ = v.number(obj, path, "carbsG", true, true)
	g.FatG, _ = v.number(obj, path, "fatG", true, true)
	g.EffectiveFrom, _ = v.timestamp(obj, path, "effectiveFrom", true)
	return g, v.clean(mark)
}

func (v *validator) parseMealTemplate(path string, raw any) (MealTemplate, bool) {
	mt := MealTemplate{}
	obj, ok := v.object(raw, path)
	if !ok {
		return mt, false
	}
	mark := len(v.errs)
	mt.ID, _ = v.str(obj, path, "id", true)
	mt.Name, _ = v.str(obj, path, "name", true)
	mt.MealType, _ = v.enum(obj, path, "mealType", MealTypes)

	if arr, ok := v.array(obj, path, "items"); ok {
		for i, el := range arr {
			it, ok := v.parseTemplateFoodItem(idx(path, "items", i), el)
			if ok {
				mt.Items = append(mt.Items, it)
			}
		}
	}
	return mt, v.clean(mark)
}

func (v *validator) parseTemplateFoodItem(path string, raw any) (TemplateFoodItem, bool) {
	it := TemplateFoodItem{}
	obj, ok := v.object(raw, path)
	if !ok {
		return it, false
	}
	mark := len(v.errs)
	it.ID, _ = v.str(obj, path, "id", true)
	it.Name, _ = v.str(obj, path, "name", true)
	it.Quantity, _ = v.number(obj, path, "quantity", true, true)
	it.Unit, _ = v.str(obj, path, "unit", false)
	it.Calories, _ = v.number(obj, path, "calories", true, true)
	return it, v.clean(mark)
}

func (v *validator) parseFamilyMember(path string, raw any) (FamilyMember, bool) {
	fm := FamilyMember{}
	obj, ok := v.object(raw, path)
	if !ok {
		return fm, false
	}
	mark := len(v.errs)
	fm.ID, _ = v.str(obj, path, "id", true)
	fm.Name, _ = v.str(obj, path, "name", true)
	fm.BirthDate = v.optTimestampPtr(obj, path, "birthDate")
	fm.RelationshipTypeID = v.ref(obj, path, "relationshipTypeId")
	return fm, v.clean(mark)
}

func (v *validator) parseTimeLog(path string, raw any) (TimeLog, bool) {
	tl := TimeLog{}
	obj, ok := v.object(raw, path)
	if !ok {
		return tl, false
	}
	mark := len(v.errs)
	tl.ID, _ = v.str(obj, path, "id", true)
	tl.FamilyMemberID = v.ref(obj, path, "familyMemberId")
	tl.ActivityTypeID = v.ref(obj, path, "activityTypeId")
	tl.StartedAt, _ = v.timestamp(obj, path, "startedAt", true)
	tl.DurationMinutes, _ = v.integer(obj, path, "durationMinutes", true, true)
	tl.Notes, _ = v.str(obj, path, "notes", false)
	return tl, v.clean(mark)
}

func (v *validator) parseEvent(path string, raw any) (Event, bool) {
	ev := Event{}
	obj, ok := v.object(raw, path)
	if !ok {
		return ev, false
	}
	mark := len(v.errs)
	ev.ID, _ = v.str(obj, path, "id", true)
	ev.Title, _ = v.str(obj, path, "title", true)
	ev.FamilyMemberID = v.ref(obj, path, "familyMemberId")
	ev.EventTypeID = v.ref(obj, path, "eventTypeId")
	ev.ScheduledAt, _ = v.timestamp(obj, path, "scheduledAt", true)
	ev.Location, _ = v.str(obj, path, "location", false)
	return ev, v.clean(mark)
}

func (v *validator) parseReminder(path string, raw any) (Reminder, bool) {
	r := Reminder{}
	obj, ok := v.object(raw, path)
	if !ok {
		return r, false
	}
	mark := len(v.errs)
	r.ID, _ = v.str(obj, path, "id", true)
	r.Title, _ = v.str(obj, path, "title", true)
	r.FamilyMemberID = v.ref(obj, path, "familyMemberId")
	r.ReminderTypeID = v.ref(obj, path, "reminderTypeId")
	r.RemindAt, _ = v.timestamp(obj, path, "remindAt", true)
	r.Done, _ = v.boolean(obj, path, "done", false)
	return r, v.clean(mark)
}

func (v *validator) parseCatalogItem(path string, raw any) (CatalogItem, bool) {
	ci := CatalogItem{}
	obj, ok := v.object(raw, path)
	if !ok {
		return ci, false
	}
	mark := len(v.errs)
	ci.ID, _ = v.str(obj, path, "id", true)
	ci.Kind, _ = v.str(obj, path, "kind", true)
	ci.Name, _ = v.str(obj, path, "name", true)
	ci.Slug, _ = v.str(obj, path, "slug", true)
	ci.ParentID = v.ref(obj, path, "parentId")
	ci.Level, _ = v.integer(obj, path, "level", true, true)
	ci.IsSystem, _ = v.boolean(obj, path, "isSystem", false)
	ci.OwnerID = v.ref(obj, path, "ownerId")
	return ci, v.clean(mark)
}
