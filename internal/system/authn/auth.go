/*
 * Copyright (c) 2026, Ethyca, Inc. (https://ethyca.com).
 *
 * Ethyca, Inc. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package authn

import (
	"net/http"
	"strings"

	"github.com/ethyca/fides-consent-service/internal/system/config"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateRequest validates the Authorization: Bearer token on an
// administrative request and checks that the token grants the required scope.
func ValidateRequest(r *http.Request, requiredScope string) error {

	logger := log.GetLogger()

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		logger.Debug("Missing or malformed Authorization header.")
		return unauthorizedError()
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := parseAndVerify(tokenString)
	if err != nil {
		logger.Audit(log.AuditEvent{
			InitiatorType: log.InitiatorTypeAdmin,
			ActionID:      log.ActionAuthenticationFailure,
		})
		return unauthorizedError()
	}

	if !hasScope(claims, requiredScope) {
		logger.Debug("Token does not grant the required scope.", log.String("scope", requiredScope))
		return unauthorizedError()
	}

	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeAdmin,
		ActionID:      log.ActionAuthenticationSuccess,
	})
	return nil
}

// parseAndVerify verifies the token signature and audience and returns its claims.
func parseAndVerify(tokenString string) (jwt.MapClaims, error) {

	authConfig := config.GetFCSRuntime().Config.Auth
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(authConfig.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithAudience(authConfig.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		errMsg := "Error occurred when validating the JWT token."
		log.GetLogger().Debug(errMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PARSING_ERROR.Code,
			Message:     errors2.PARSING_ERROR.Message,
			Description: errMsg,
		}, err)
	}
	return claims, nil
}

// hasScope reports whether the space-separated scope claim contains the required scope.
func hasScope(claims jwt.MapClaims, requiredScope string) bool {

	raw, ok := claims["scope"].(string)
	if !ok {
		return false
	}
	for _, scope := range strings.Fields(raw) {
		if scope == requiredScope {
			return true
		}
	}
	return false
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UNAUTHORIZED.Code,
		Message:     errors2.UNAUTHORIZED.Message,
		Description: "Authentication failed for the administrative endpoint.",
	}, http.StatusUnauthorized)
}
