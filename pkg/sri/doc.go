// Package sri valida documentos de identificación ecuatorianos (cédula, RUC y pasaporte)
// según las reglas del Registro Civil y del Servicio de Rentas Internas (SRI).
// Las funciones son puras: no registran logs ni tienen efectos secundarios.
package sri
