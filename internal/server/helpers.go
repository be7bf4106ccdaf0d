package server

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// errResponseWritten is a sentinel indicating the HTTP response was
// already committed by a helper. Handlers must return nil (not this
// error) to avoid Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePagination extracts and sanitizes limit and offset query
// parameters. Out-of-range values are corrected, never rejected.
func parsePagination(c *fiber.Ctx) pagination.Params {
	return pagination.Sanitize(
		c.QueryInt("limit", pagination.DefaultLimit),
		c.QueryInt("offset", 0),
	)
}

// listEnvelope builds the pagination block for the current request.
func listEnvelope(c *fiber.Ctx, params pagination.Params, totalCount, itemsCount int) pagination.Envelope {
	query := url.Values{}
	for k, v := range c.Queries() {
		query.Set(k, v)
	}
	return pagination.BuildEnvelope(params, totalCount, itemsCount, c.Path(), query)
}

// currentUserID returns the authenticated user's ID from locals. Only
// valid behind AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// parseID extracts a route parameter by name as a positive uint. On
// failure it writes a 400 JSON response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+strings.ToUpper(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// optionalUserID extracts the userID from the Authorization header
// without enforcing it. Anonymous requests get zero.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// respondWithAppError maps an AppError code to the matching HTTP status.
func respondWithAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		case "CONFLICT":
			return models.RespondWithError(c, fiber.StatusConflict, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
