package devserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// reservedParams are list/export query keys with dedicated semantics; any
// other key naming a record field becomes an exact-match filter.
var reservedParams = map[string]bool{
	"start_date":      true,
	"end_date":        true,
	"search":          true,
	"supervisorId":    true,
	"all_supervisors": true,
}

func (s *Server) listRecords(c *gin.Context) {
	def, ok := findEntity(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if !s.allow(c, def) {
		return
	}

	rows, err := s.fetchScoped(c, def)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.present(def, row))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createRecord(c *gin.Context) {
	def, ok := findEntity(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if !s.allow(c, def) {
		return
	}
	if def.ReadOnly {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "collection is read-only"})
		return
	}

	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if fieldErrs := validate(def, doc); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	uid, _ := actingUser(c)
	doc["supervisor_id"] = uid
	derive(def, doc)

	stored, err := s.store.Insert(c.Request.Context(), def.Name, doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusCreated, s.present(def, stored))
}

func (s *Server) updateRecord(c *gin.Context) {
	def, ok := findEntity(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if !s.allow(c, def) {
		return
	}
	if def.ReadOnly {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "collection is read-only"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if fieldErrs := validate(def, doc); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	uid, role := actingUser(c)
	if role != "admin" {
		doc["supervisor_id"] = uid
	}
	derive(def, doc)

	stored, found, err := s.store.Update(c.Request.Context(), def.Name, id, doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, s.present(def, stored))
}

func (s *Server) deleteRecord(c *gin.Context) {
	def, ok := findEntity(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if !s.allow(c, def) {
		return
	}
	if def.ReadOnly {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "collection is read-only"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	found, err := s.store.Delete(c.Request.Context(), def.Name, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// allow enforces collection-level role rules; it writes the response and
// returns false on rejection.
func (s *Server) allow(c *gin.Context, def entityDef) bool {
	_, role := actingUser(c)
	if def.AdminOnly && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return false
	}
	return true
}

// fetchScoped loads the collection and applies ownership scoping plus the
// server-side query filters.
func (s *Server) fetchScoped(c *gin.Context, def entityDef) ([]map[string]any, error) {
	rows, err := s.store.List(c.Request.Context(), def.Name)
	if err != nil {
		return nil, err
	}

	uid, role := actingUser(c)

	scoped := rows[:0:0]
	for _, row := range rows {
		if !ownedVisible(def, row, uid, role, c.Query("supervisorId"), c.Query("all_supervisors")) {
			continue
		}
		if !matchesQuery(def, row, c) {
			continue
		}
		scoped = append(scoped, row)
	}
	return scoped, nil
}

// ownedVisible applies the ownership slice: supervisors always see only
// their own records; admins see everything unless they narrow to one
// supervisor.
func ownedVisible(def entityDef, row map[string]any, uid int, role, supervisorParam, allParam string) bool {
	if _, has := row["supervisor_id"]; !has {
		return true
	}
	owner := docField(row, "supervisor_id")

	if role != "admin" {
		return owner == uid
	}
	if supervisorParam != "" && allParam == "" {
		want, err := strconv.Atoi(supervisorParam)
		if err != nil {
			return false
		}
		return owner == want
	}
	return true
}

func matchesQuery(def entityDef, row map[string]any, c *gin.Context) bool {
	if def.DateField != "" {
		date, _ := row[def.DateField].(string)
		if start := c.Query("start_date"); start != "" && date < start {
			return false
		}
		if end := c.Query("end_date"); end != "" && date > end {
			return false
		}
	}

	if term := c.Query("search"); term != "" {
		needle := strings.ToLower(term)
		found := false
		for _, field := range def.Search {
			if value, ok := row[field].(string); ok && strings.Contains(strings.ToLower(value), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		value, has := row[key]
		if !has {
			continue
		}
		if fmt.Sprint(value) != values[0] {
			return false
		}
	}

	return true
}

func validate(def entityDef, doc map[string]any) map[string][]string {
	fieldErrs := map[string][]string{}
	for _, field := range def.Required {
		value, has := doc[field]
		if !has || value == nil || fmt.Sprint(value) == "" {
			fieldErrs[field] = append(fieldErrs[field], "this field is required")
		}
	}
	for _, field := range def.Numeric {
		value, has := doc[field]
		if !has || value == nil || value == "" {
			continue
		}
		d, err := toDecimal(value)
		if err != nil {
			fieldErrs[field] = append(fieldErrs[field], "must be a number")
			continue
		}
		if d.IsNegative() {
			fieldErrs[field] = append(fieldErrs[field], "must not be negative")
		}
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

// derive fills server-computed fields before storage.
func derive(def entityDef, doc map[string]any) {
	if def.Name != "milk-yields" {
		return
	}
	morning, errM := toDecimal(doc["morning_litres"])
	evening, errE := toDecimal(doc["evening_litres"])
	if errM == nil && errE == nil {
		doc["total_litres"] = morning.Add(evening).String()
	}
}

// present normalizes a stored document for the wire: numeric fields become
// decimal strings and credential material is stripped.
func (s *Server) present(def entityDef, row map[string]any) map[string]any {
	out := cloneDoc(row)
	delete(out, "password_hash")
	for _, field := range def.Numeric {
		value, has := out[field]
		if !has || value == nil || value == "" {
			continue
		}
		if d, err := toDecimal(value); err == nil {
			out[field] = d.String()
		}
	}
	return out
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", value)
	}
}

func docField(row map[string]any, key string) int {
	switch v := row[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
