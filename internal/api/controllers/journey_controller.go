package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripiki/internal/aggregates"
	"tripiki/internal/models/request_models"
	"tripiki/internal/models/response_models"
	"tripiki/internal/services"
	"tripiki/pkg/utils"
)

type JourneyController struct {
	journeyService services.JourneyServiceInterface
}

func NewJourneyController(journeyService services.JourneyServiceInterface) *JourneyController {
	return &JourneyController{
		journeyService: journeyService,
	}
}

func toTagSpecs(reqs []request_models.TagSpecRequest) []aggregates.TagSpec {
	specs := make([]aggregates.TagSpec, 0, len(reqs))
	for _, r := range reqs {
		specs = append(specs, aggregates.TagSpec{
			Topic:       r.Topic,
			Orientation: aggregates.Orientation(r.Orientation),
		})
	}
	return specs
}

func toPlaceSpec(r request_models.PlaceSpecRequest) aggregates.PlaceSpec {
	return aggregates.PlaceSpec{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		Category:  aggregates.Category(r.Category),
		Longitude: r.Longitude,
		Latitude:  r.Latitude,
		Link:      r.Link,
	}
}

// CreateJourney godoc
// @Summary Create a journey
// @Description Create a new shared journey with the authenticated user as first participant
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.CreateJourneyRequest true "Name, start/end dates (epoch seconds), theme path, initial tags"
// @Success 200 {object} response_models.CreateJourneyResponse
// @Security BearerAuth
// @Router /journeys/create-journey [post]
func (j *JourneyController) CreateJourney(c *gin.Context) {
	var req request_models.CreateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Name, start_date and end_date are required")
		return
	}

	userId := c.GetString("user_id")

	journeyId, err := j.journeyService.CreateJourney(c.Request.Context(),
		req.Name, req.StartDate, req.EndDate, req.ThemePath, toTagSpecs(req.Tags), userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.CreateJourneyResponse{JourneyID: journeyId}, "Journey created successfully")
}

// AddParticipant godoc
// @Summary Join a journey
// @Description Add the authenticated user to a journey's participants
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.AddParticipantRequest true "Journey ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys/add-participant [post]
func (j *JourneyController) AddParticipant(c *gin.Context) {
	var req request_models.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "JourneyID is required")
		return
	}

	userId := c.GetString("user_id")

	if err := j.journeyService.AddParticipant(c.Request.Context(), req.JourneyID, userId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Participant added successfully")
}

// RemoveParticipant godoc
// @Summary Leave a journey
// @Description Remove a participant (defaults to the authenticated user) and cascade their votes and likes
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.RemoveParticipantRequest true "Journey ID, optional user ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys/remove-participant [post]
func (j *JourneyController) RemoveParticipant(c *gin.Context) {
	var req request_models.RemoveParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "JourneyID is required")
		return
	}

	userId := req.UserID
	if userId == "" {
		userId = c.GetString("user_id")
	}

	if err := j.journeyService.RemoveParticipant(c.Request.Context(), req.JourneyID, userId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Participant removed successfully")
}

// SetTags godoc
// @Summary Replace the journey's tag list
// @Description Replace the tag list wholesale; resubmitting an existing (topic, orientation) merges the caller into its voters
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.SetTagsRequest true "Journey ID, tag specs"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys/set-tags [post]
func (j *JourneyController) SetTags(c *gin.Context) {
	var req request_models.SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "JourneyID and tags are required")
		return
	}

	userId := c.GetString("user_id")

	if err := j.journeyService.SetTags(c.Request.Context(), req.JourneyID, toTagSpecs(req.Tags), userId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Tags updated successfully")
}

// AddPikmi godoc
// @Summary Propose a candidate place
// @Description Add a pikmi (candidate place) to the journey's pool
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.AddPikmiRequest true "Journey ID, place"
// @Success 200 {object} response_models.AddPikmiResponse
// @Security BearerAuth
// @Router /journeys/add-pikmi [post]
func (j *JourneyController) AddPikmi(c *gin.Context) {
	var req request_models.AddPikmiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "JourneyID and place are required")
		return
	}

	userId := c.GetString("user_id")

	pikmiId, err := j.journeyService.AddPikmi(c.Request.Context(), req.JourneyID, toPlaceSpec(req.Place), userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.AddPikmiResponse{PikmiID: pikmiId}, "Pikmi added successfully")
}

// LikePikmi godoc
// @Summary Like a candidate place
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.LikePikmiRequest true "Journey ID, pikmi ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys/like-pikmi [post]
func (j *JourneyController) LikePikmi(c *gin.Context) {
	var req request_models.LikePikmiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "JourneyID and PikmiID are required")
		return
	}

	userId := c.GetString("user_id")

	if err := j.journeyService.LikePikmi(c.Request.Context(), req.JourneyID, req.PikmiID, userId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Pikmi liked successfully")
}

// UnlikePikmi godoc
// @Summary Withdraw a like from a candidate place
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.LikePikmiRequest true "Journey ID, pikmi ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys/unlike-pikmi [post]
func (j *JourneyController) UnlikePikmi(c *gin.Context) {
	var req request_models.LikePikmiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "JourneyID and PikmiID are required")
		return
	}

	userId := c.GetString("user_id")

	if err := j.journeyService.UnlikePikmi(c.Request.Context(), req.JourneyID, req.PikmiID, userId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Pikmi unliked successfully")
}

// ScheduleDay godoc
// @Summary Replace one itinerary day
// @Description Replace the given day's confirmed places (pikis) wholesale
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.ScheduleDayRequest true "Journey ID, day index, places"
// @Success 200 {object} response_models.ScheduleDayResponse
// @Security BearerAuth
// @Router /journeys/schedule-day [post]
func (j *JourneyController) ScheduleDay(c *gin.Context) {
	var req request_models.ScheduleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "JourneyID and day_index are required")
		return
	}

	userId := c.GetString("user_id")

	places := make([]aggregates.PlaceSpec, 0, len(req.Places))
	for _, p := range req.Places {
		places = append(places, toPlaceSpec(p))
	}

	pikiIds, err := j.journeyService.ScheduleDay(c.Request.Context(), req.JourneyID, *req.DayIndex, places, userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ScheduleDayResponse{PikiIDs: pikiIds}, "Day scheduled successfully")
}

// GetJourneyById godoc
// @Summary Get journey details by ID
// @Description Fetch the full journey snapshot including participants, tags, pikmis and the itinerary
// @Tags Journey
// @Accept json
// @Produce json
// @Param journeyId path string true "Journey ID"
// @Success 200 {object} response_models.JourneyDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys/get-journey-by-id/{journeyId} [get]
func (j *JourneyController) GetJourneyById(c *gin.Context) {
	journeyId := c.Param("journeyId")
	if journeyId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Journey ID is required")
		return
	}

	journey, err := j.journeyService.GetJourney(c.Request.Context(), journeyId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, journey, "Journey details fetched successfully")
}

// GetJourneyByUserId godoc
// @Summary Get journeys by user ID
// @Description Fetch a paginated list of journeys the authenticated user participates in
// @Tags Journey
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {array} []response_models.JourneyResponse
// @Security BearerAuth
// @Router /journeys/get-journey-by-userid [get]
func (j *JourneyController) GetJourneyByUserId(c *gin.Context) {

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	userId := c.GetString("user_id")

	journeys, err := j.journeyService.GetListOfJourneyByUserId(c.Request.Context(), page, pageSize, userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, journeys, "Journeys fetched successfully")
}
