package dem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ErrMissingHeaders is returned when a grid ends its header block before
// all mandatory keywords were read.
var ErrMissingHeaders = errors.New("DEM doesn't include all mandatory headers")

// ParseEsriASCIIRaster reads an ESRI ASCII grid from reader.
func ParseEsriASCIIRaster(reader io.Reader) (EsriASCIIRaster, error) {

	raster := EsriASCIIRaster{}
	remainingHeaders := []string{"NCOLS", "NROWS", "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER", "CELLSIZE", "NODATA_VALUE"}
	stillIsHeader := true
	rowIndex := uint(0)
	var esriData [][]float64

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		// first field as upper case
		keyword := strings.ToUpper(fields[0])

		if stillIsHeader && slices.Contains(remainingHeaders, keyword) {
			remainingHeaders = remove(remainingHeaders, keyword)

			// there can either be corner or center not both
			if keyword == "XLLCENTER" || keyword == "YLLCENTER" {
				remainingHeaders = remove(remainingHeaders, "XLLCORNER", "YLLCORNER")
			}
			if keyword == "XLLCORNER" || keyword == "YLLCORNER" {
				remainingHeaders = remove(remainingHeaders, "XLLCENTER", "YLLCENTER")
			}

			if err := parseHeaderLine(fields, &raster); err != nil {
				return raster, err
			}
			continue
		}

		if stillIsHeader { // this is the first data line
			// NODATA_VALUE is an optional header
			remainingHeaders = remove(remainingHeaders, "NODATA_VALUE")

			if len(remainingHeaders) > 0 {
				return raster, fmt.Errorf("%w: missing %s", ErrMissingHeaders, strings.Join(remainingHeaders, ", "))
			}

			stillIsHeader = false
		}

		row, err := parseDataLine(fields, raster.Ncols)
		if err != nil {
			return raster, fmt.Errorf("row %d: %w", rowIndex, err)
		}

		esriData = append(esriData, row)
		rowIndex++

		if rowIndex >= raster.Nrows {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return raster, err
	}

	if stillIsHeader {
		return raster, errors.New("DEM contains no data rows")
	}

	if rowIndex < raster.Nrows {
		return raster, fmt.Errorf("DEM has %d rows, header declares %d", rowIndex, raster.Nrows)
	}

	raster.Data = esriData

	return raster, nil
}

func parseHeaderLine(fields []string, grid *EsriASCIIRaster) error {
	if len(fields) != 2 {
		return fmt.Errorf("header line must have exactly two fields")
	}

	switch strings.ToUpper(fields[0]) {
	case "NCOLS", "NROWS":
		i, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return err
		}
		if i == 0 {
			return fmt.Errorf("%s must be greater than 0", strings.ToUpper(fields[0]))
		}
		if strings.EqualFold(fields[0], "NCOLS") {
			grid.Ncols = uint(i)
		} else {
			grid.Nrows = uint(i)
		}

	case "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		switch strings.ToUpper(fields[0]) {
		case "XLLCENTER":
			grid.Xcenter = &f
		case "XLLCORNER":
			grid.Xcorner = &f
		case "YLLCENTER":
			grid.Ycenter = &f
		case "YLLCORNER":
			grid.Ycorner = &f
		}

	case "CELLSIZE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		if !(f > 0.0) || math.IsInf(f, 1) {
			return fmt.Errorf("CELLSIZE must be a finite number greater than 0")
		}
		grid.CellSize = f

	case "NODATA_VALUE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		grid.NoDataValue = f
		grid.HasNoData = true

	default:
		return fmt.Errorf("unknown header keyword: %s", fields[0])
	}

	return nil
}

func parseDataLine(fields []string, cols uint) ([]float64, error) {
	if uint(len(fields)) < cols {
		return nil, fmt.Errorf("DEM data row is too short")
	}

	row := make([]float64, cols)

	for i := uint(0); i < cols; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return row, err
		}
		row[i] = f
	}

	return row, nil
}

// remove removes all given elements from arr
func remove(arr []string, elements ...string) []string {
	var remaining []string

	for _, e := range arr {
		if !slices.Contains(elements, e) {
			remaining = append(remaining, e)
		}
	}

	return remaining
}
